package logic

import (
	"github.com/EtomicBomb/cab/pkg/api"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Database maps a symbol to the formula describing what satisfying that
// symbol actually requires. Symbols without an entry are unconditioned
// leaves. Entries are inserted once per run; afterwards only the minimizer
// mutates them, and the key set never grows.
type Database struct {
	table    *SymbolTable
	formulas map[Symbol]Formula
}

func NewDatabase(table *SymbolTable) *Database {
	return &Database{table: table, formulas: map[Symbol]Formula{}}
}

// Insert records the requirement formula for one qualification, interning
// both the qualification itself and everything the tree mentions.
func (db *Database) Insert(q api.Qualification, tree *api.PrerequisiteTree) Symbol {
	s := db.table.Intern(q)
	db.formulas[s] = FromTree(tree, db.table)
	return s
}

func (db *Database) Formula(s Symbol) (Formula, bool) {
	f, exists := db.formulas[s]
	return f, exists
}

// Symbols returns the keyed symbols in ascending order.
func (db *Database) Symbols() []Symbol {
	keys := maps.Keys(db.formulas)
	slices.Sort(keys)
	return keys
}

func (db *Database) Table() *SymbolTable {
	return db.table
}

func (db *Database) Len() int {
	return len(db.formulas)
}

// Clone deep-copies the formulas while sharing the symbol table, so a
// pre-minimization snapshot can be kept for verification.
func (db *Database) Clone() *Database {
	formulas := make(map[Symbol]Formula, len(db.formulas))
	for s, f := range db.formulas {
		formulas[s] = f.Clone()
	}
	return &Database{table: db.table, formulas: formulas}
}

func (db *Database) setFormula(s Symbol, f Formula) {
	db.formulas[s] = f
}
