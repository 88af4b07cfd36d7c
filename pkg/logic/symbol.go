package logic

import (
	"github.com/EtomicBomb/cab/pkg/api"
)

// Symbol is a dense integer handle for one qualification within a single
// minimization run. Handles are allocated in order of first sight and never
// reused; they are only meaningful together with the table that produced them.
type Symbol int

// SymbolTable interns qualifications. It is a single-run object and is not
// safe for concurrent mutation.
type SymbolTable struct {
	handles map[api.Qualification]Symbol
	quals   []api.Qualification
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{handles: map[api.Qualification]Symbol{}}
}

// Intern returns the handle for q, allocating a fresh one on first sight.
func (t *SymbolTable) Intern(q api.Qualification) Symbol {
	if s, exists := t.handles[q]; exists {
		return s
	}
	s := Symbol(len(t.quals))
	t.handles[q] = s
	t.quals = append(t.quals, q)
	return s
}

// Resolve maps a handle back to its qualification. It reports false for
// handles this table never produced.
func (t *SymbolTable) Resolve(s Symbol) (api.Qualification, bool) {
	if s < 0 || int(s) >= len(t.quals) {
		return nil, false
	}
	return t.quals[s], true
}

func (t *SymbolTable) Len() int {
	return len(t.quals)
}
