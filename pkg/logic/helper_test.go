package logic

import (
	"fmt"

	"github.com/EtomicBomb/cab/pkg/api"
)

// testDatabase builds a database straight from symbol-keyed formulas. The
// table is padded with placeholder courses so every mentioned symbol
// resolves.
func testDatabase(entries map[Symbol]Formula) *Database {
	max := Symbol(0)
	for s, f := range entries {
		if s > max {
			max = s
		}
		for _, member := range f.Symbols() {
			if member > max {
				max = member
			}
		}
	}
	table := NewSymbolTable()
	for i := Symbol(0); i <= max; i++ {
		table.Intern(api.CourseCode{Subject: "TEST", Number: fmt.Sprintf("%04d", i)})
	}
	db := NewDatabase(table)
	for s, f := range entries {
		db.formulas[s] = f
	}
	return db
}

func satisfies(f Formula, assignment map[Symbol]bool) bool {
	for _, clause := range f {
		satisfied := false
		for _, s := range clause {
			if assignment[s] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// consistent reports whether the assignment respects the database: a symbol
// may only be satisfied when its own requirement formula is.
func consistent(db *Database, assignment map[Symbol]bool) bool {
	for _, s := range db.Symbols() {
		f, _ := db.Formula(s)
		if assignment[s] && !satisfies(f, assignment) {
			return false
		}
	}
	return true
}

// equivalentUnder brute-forces every database-consistent assignment and
// checks that a and b agree on all of them.
func equivalentUnder(db *Database, a, b Formula) bool {
	n := db.Table().Len()
	for mask := 0; mask < 1<<n; mask++ {
		assignment := map[Symbol]bool{}
		for i := 0; i < n; i++ {
			assignment[Symbol(i)] = mask&(1<<i) != 0
		}
		if !consistent(db, assignment) {
			continue
		}
		if satisfies(a, assignment) != satisfies(b, assignment) {
			return false
		}
	}
	return true
}
