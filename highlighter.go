package lineedit

// Highlighter computes syntax-coloring spans for a complete command line,
// run off the main goroutine by the Job Pool since it may shell out to a
// parser (spec.md §4.7 "Highlighter"). The teacher has no analogous
// concept; this is modeled on the Autosuggester's callback shape to keep
// the two async pipelines symmetric.
type Highlighter func(text string) []ColorSpan

// highlightKind tags Highlighter jobs in the Job Pool's per-kind
// generation tracking.
const highlightKind = "highlight"

// scheduleHighlight submits fn against core's current text/generation, and
// registers a callback that merges the result in only if no newer edit has
// superseded it (spec.md §5 "generation counter").
func scheduleHighlight(pool *JobPool, core *EditCore, fn Highlighter) {
	if fn == nil || pool == nil {
		return
	}
	gen := core.Generation()
	text := core.Text()
	pool.Submit(highlightKind, gen, text, func(generation uint64, text string) interface{} {
		return fn(text)
	}, func(result interface{}) {
		if !pool.IsLatest(highlightKind, gen) {
			return
		}
		spans, _ := result.([]ColorSpan)
		core.SetColors(gen, spans)
	})
}
