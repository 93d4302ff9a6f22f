package lineedit

import "sync"

// JobFunc is background work submitted to the worker pool: it receives the
// generation and text snapshot it was started against and returns a result
// to be merged back on the main thread if that generation is still current
// (spec.md §5 "Worker pool").
type JobFunc func(generation uint64, text string) interface{}

// job is one in-flight unit of work.
type job struct {
	generation uint64
	text       string
	fn         JobFunc
	apply      func(result interface{})
}

// JobPool runs highlighter/autosuggester work off the main goroutine,
// bounded to a fixed number of workers, and hands results back to the
// Reader Loop through a single result channel so merges happen on the main
// thread without extra locking (spec.md §5). The teacher has no equivalent:
// its screen rendering is entirely synchronous (screen.go), so this is
// built fresh from the pack's general worker-pool idiom rather than adapted
// from teacher code.
type JobPool struct {
	jobs    chan job
	results chan func()
	wg      sync.WaitGroup
	latest  map[string]uint64 // per-kind generation of the most recently submitted job
	mu      sync.Mutex
}

// NewJobPool starts n worker goroutines. n is clamped to at least 1.
func NewJobPool(n int) *JobPool {
	if n < 1 {
		n = 1
	}
	p := &JobPool{
		jobs:    make(chan job, 64),
		results: make(chan func(), 64),
		latest:  make(map[string]uint64),
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *JobPool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		result := j.fn(j.generation, j.text)
		p.results <- func() { j.apply(result) }
	}
}

// Submit enqueues fn, tagged with kind so a newer submission of the same
// kind (e.g. "highlight") can supersede an older one still in flight; apply
// runs on the main thread via Drain once the worker finishes.
func (p *JobPool) Submit(kind string, generation uint64, text string, fn JobFunc, apply func(result interface{})) {
	p.mu.Lock()
	p.latest[kind] = generation
	p.mu.Unlock()
	p.jobs <- job{generation: generation, text: text, fn: fn, apply: apply}
}

// IsLatest reports whether generation is still the most recently submitted
// generation for kind, used by a job's apply callback to discard stale
// results instead of clobbering newer edits (spec.md §5 "generation
// counter").
func (p *JobPool) IsLatest(kind string, generation uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest[kind] == generation
}

// Drain runs every completed job's apply callback without blocking. The
// Reader Loop calls it between keystrokes.
func (p *JobPool) Drain() {
	for {
		select {
		case fn := <-p.results:
			fn()
		default:
			return
		}
	}
}

// DrainOne blocks for exactly one completed job and runs its callback.
func (p *JobPool) DrainOne() {
	fn := <-p.results
	fn()
}

// Pending reports whether any job has completed but not yet been drained.
func (p *JobPool) Pending() bool {
	return len(p.results) > 0
}

// Close stops accepting new jobs and waits for in-flight ones to finish.
func (p *JobPool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}
