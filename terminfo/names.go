package terminfo

import "github.com/xo/terminfo"

// capName pairs a stable key name (fish's input_common.cpp naming, e.g.
// "key_up") with the terminfo string capability that produces it, when the
// database is loaded successfully.
type capName struct {
	name string
	cap  int // terminfo.KeyXxx string-capability index
}

// terminfoKeyNames is the priority-ordered table of capability names this
// adapter resolves against a loaded terminfo database. Ordering matters for
// NameForSequence, which returns the first match: more specific/more common
// bindings are listed first so, e.g., key_up is preferred over a rarer
// capability that happens to produce an identical sequence on some
// terminals.
var terminfoKeyNames = []capName{
	{"key_up", terminfo.KeyUp},
	{"key_down", terminfo.KeyDown},
	{"key_left", terminfo.KeyLeft},
	{"key_right", terminfo.KeyRight},
	{"key_home", terminfo.KeyHome},
	{"key_end", terminfo.KeyEnd},
	{"key_ic", terminfo.KeyInsert},
	{"key_dc", terminfo.KeyDelete},
	{"key_ppage", terminfo.KeyPgUp},
	{"key_npage", terminfo.KeyPgDn},
	{"key_btab", terminfo.KeyBackTab},
	{"key_f1", terminfo.KeyF1},
	{"key_f2", terminfo.KeyF2},
	{"key_f3", terminfo.KeyF3},
	{"key_f4", terminfo.KeyF4},
	{"key_f5", terminfo.KeyF5},
	{"key_f6", terminfo.KeyF6},
	{"key_f7", terminfo.KeyF7},
	{"key_f8", terminfo.KeyF8},
	{"key_f9", terminfo.KeyF9},
	{"key_f10", terminfo.KeyF10},
	{"key_f11", terminfo.KeyF11},
	{"key_f12", terminfo.KeyF12},
}

// builtinKeySeqs covers the capabilities a dumb/unknown terminal still
// almost always supports, grounded directly on the teacher's supportedSeqs
// table (input.go) — the ~75%-of-terminals xterm-compatible subset — mapped
// onto fish-style names instead of the teacher's private rune encoding.
var builtinKeySeqs = []nameAndSeq{
	{"key_up", "\x1b[A"},
	{"key_down", "\x1b[B"},
	{"key_right", "\x1b[C"},
	{"key_left", "\x1b[D"},
	{"key_home", "\x1b[H"},
	{"key_end", "\x1b[F"},
	{"key_dc", "\x1b[3~"},
	{"key_ppage", "\x1b[5~"},
	{"key_npage", "\x1b[6~"},
	{"key_up_alt", "\x1bOA"},
	{"key_down_alt", "\x1bOB"},
	{"key_right_alt", "\x1bOC"},
	{"key_left_alt", "\x1bOD"},
	{"key_home_alt", "\x1bOH"},
	{"key_end_alt", "\x1bOF"},
	{"key_home_vt", "\x1b[1~"},
	{"key_end_vt", "\x1b[4~"},
	{"bracketed_paste_start", "\x1b[200~"},
	{"bracketed_paste_end", "\x1b[201~"},
}

// buildNameTable populates nameSeq/seqName from the loaded terminfo (when
// present) layered under the builtin fallback table, so a name always
// resolves to *something* usable even against a terminfo database missing
// some of the rarer capabilities.
func (a *Adapter) buildNameTable() {
	seen := make(map[string]bool)

	add := func(name, seq string) {
		if seq == "" || seen[name] {
			return
		}
		seen[name] = true
		a.nameSeq[name] = seq
		a.seqName = append(a.seqName, nameAndSeq{name: name, seq: seq})
	}

	if a.ti != nil {
		for _, cn := range terminfoKeyNames {
			add(cn.name, a.ti.Printf(cn.cap))
		}
	}
	for _, e := range builtinKeySeqs {
		add(e.name, e.seq)
	}
}
