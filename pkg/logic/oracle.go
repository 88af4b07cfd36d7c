package logic

import (
	"fmt"
)

// ClauseRef names one clause of one database entry.
type ClauseRef struct {
	Symbol Symbol
	Index  int
}

// Oracle answers whether satisfying one clause guarantees satisfying another,
// substituting clause members with the clauses of their own database entries
// as many times as needed. Query results are memoized for the lifetime of the
// oracle; build a fresh oracle after mutating the database.
type Oracle struct {
	db   *Database
	memo map[string]bool
}

func NewOracle(db *Database) *Oracle {
	return &Oracle{db: db, memo: map[string]bool{}}
}

// Implies reports whether satisfying lhs (any one member) is guaranteed to
// satisfy rhs. forbidden, when set, names a single database clause the search
// may not substitute through, so that a clause under a redundancy test cannot
// prove itself redundant via its own entry.
func (o *Oracle) Implies(lhs, rhs Clause, forbidden *ClauseRef) bool {
	key := queryKey(lhs, rhs, forbidden)
	if result, exists := o.memo[key]; exists {
		return result
	}
	result := o.search(lhs, rhs, forbidden)
	o.memo[key] = result
	return result
}

// search runs a breadth-first worklist over candidate clauses. A candidate is
// a clause known to be implied by lhs; replacing a member with one clause of
// that member's database entry yields a weaker clause, so once any candidate
// is a subset of rhs the implication holds. The seen set makes the search
// terminate on cyclic databases: revisited candidates are dead branches.
func (o *Oracle) search(lhs, rhs Clause, forbidden *ClauseRef) bool {
	if lhs.SubsetOf(rhs) {
		return true
	}
	seen := map[string]bool{lhs.key(): true}
	queue := []Clause{lhs}
	for len(queue) > 0 {
		candidate := queue[0]
		queue = queue[1:]
		for _, s := range candidate {
			entry, exists := o.db.Formula(s)
			if !exists {
				continue
			}
			for i, sum := range entry {
				if forbidden != nil && forbidden.Symbol == s && forbidden.Index == i {
					continue
				}
				child := candidate.Without(s).Union(sum)
				key := child.key()
				if seen[key] {
					continue
				}
				seen[key] = true
				if !o.expandable(child, rhs) {
					continue
				}
				if child.SubsetOf(rhs) {
					return true
				}
				queue = append(queue, child)
			}
		}
	}
	return false
}

// expandable rejects candidates holding a symbol that is neither demanded by
// rhs nor keyed in the database: no substitution can ever remove such a
// member, so the candidate can never become a subset of rhs.
func (o *Oracle) expandable(candidate, rhs Clause) bool {
	for _, s := range candidate {
		if rhs.Contains(s) {
			continue
		}
		if _, exists := o.db.Formula(s); !exists {
			return false
		}
	}
	return true
}

func queryKey(lhs, rhs Clause, forbidden *ClauseRef) string {
	if forbidden == nil {
		return lhs.key() + ">" + rhs.key()
	}
	return fmt.Sprintf("%s>%s!%d:%d", lhs.key(), rhs.key(), forbidden.Symbol, forbidden.Index)
}
