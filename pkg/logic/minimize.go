package logic

import (
	"fmt"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// DefaultMaxIterations bounds the minimize fixed-point loop. Every iteration
// applies at most one removal, so the cap also bounds the total number of
// removals across the database.
const DefaultMaxIterations = 100000

// Report summarizes one minimization run.
type Report struct {
	// Iterations counts fixed-point steps, including the final one that
	// found nothing left to remove.
	Iterations     int
	RemovedClauses int
	RemovedSymbols int
	// Vacuous lists entries whose formula minimized away entirely; they
	// carry no requirement and should be emitted as such.
	Vacuous []api.Qualification
	// Unsettled lists entries that still had applicable removals when the
	// iteration cap was reached.
	Unsettled []api.Qualification
	// Failed maps entry names to the reason they were left untouched.
	Failed map[string]error
}

// Converged reports whether the run reached its fixed point.
func (r *Report) Converged() bool {
	return len(r.Unsettled) == 0
}

// Minimize reduces every formula in the database to a fixed point, in place:
// clauses implied by another clause of the same entry are dropped, and clause
// members implying a fellow member are dropped in favor of the weaker member.
// Both removals preserve the satisfied-assignment set of every entry, with
// the database itself as the background implication theory. Formulas are
// left deduplicated and canonically ordered.
//
// Entries holding an unsatisfiable empty clause indicate contradictory
// source data; they are reported and skipped so the rest of the database
// still minimizes.
func Minimize(db *Database) *Report {
	return minimize(db, DefaultMaxIterations)
}

func minimize(db *Database, limit int) *Report {
	m := &minimizer{
		db:     db,
		skip:   map[Symbol]bool{},
		report: &Report{Failed: map[string]error{}},
	}
	m.screen()
	for {
		m.report.Iterations++
		removal, found := m.find(NewOracle(db))
		if !found {
			break
		}
		if m.report.Iterations >= limit {
			m.flagUnsettled()
			break
		}
		m.apply(removal)
	}
	m.finish()
	return m.report
}

type minimizer struct {
	db     *Database
	skip   map[Symbol]bool
	report *Report
}

// removal is one applicable reduction: either a whole redundant clause, or
// one redundant member within a clause.
type removal struct {
	symbol Symbol
	clause int
	member Symbol
	whole  bool
}

// screen fails entries that are already contradictory before any removal is
// attempted. The minimizer itself never empties a clause, so an empty clause
// can only come from the input.
func (m *minimizer) screen() {
	for _, s := range m.db.Symbols() {
		f, _ := m.db.Formula(s)
		for _, clause := range f {
			if len(clause) == 0 && len(f) > 1 {
				m.fail(s, fmt.Errorf("entry %s holds an unsatisfiable empty clause", m.name(s)))
				break
			}
		}
		if len(f) == 1 && len(f[0]) == 0 {
			m.fail(s, fmt.Errorf("entry %s is unconditionally false", m.name(s)))
		}
	}
}

// find locates the first applicable removal under a deterministic order:
// redundant clauses across the whole database first, then redundant members.
func (m *minimizer) find(oracle *Oracle) (removal, bool) {
	for _, s := range m.db.Symbols() {
		if r, found := m.findClause(oracle, s); found {
			return r, true
		}
	}
	for _, s := range m.db.Symbols() {
		if r, found := m.findMember(oracle, s); found {
			return r, true
		}
	}
	return removal{}, false
}

// findClause looks for a clause implied by another clause of the same entry.
// The clause under test is forbidden from proving itself via its own
// database slot.
func (m *minimizer) findClause(oracle *Oracle, s Symbol) (removal, bool) {
	if m.skip[s] {
		return removal{}, false
	}
	f, _ := m.db.Formula(s)
	for i := range f {
		for j := range f {
			if i == j {
				continue
			}
			if oracle.Implies(f[j], f[i], &ClauseRef{Symbol: s, Index: i}) {
				return removal{symbol: s, clause: i, whole: true}, true
			}
		}
	}
	return removal{}, false
}

// findMember looks for a clause member whose satisfaction already guarantees
// a fellow member. The implying member is the removable one: the weaker
// member subsumes it within the disjunction.
func (m *minimizer) findMember(oracle *Oracle, s Symbol) (removal, bool) {
	if m.skip[s] {
		return removal{}, false
	}
	f, _ := m.db.Formula(s)
	for i, clause := range f {
		for _, a := range clause {
			for _, b := range clause {
				if a == b {
					continue
				}
				if oracle.Implies(Clause{a}, Clause{b}, nil) {
					return removal{symbol: s, clause: i, member: a}, true
				}
			}
		}
	}
	return removal{}, false
}

func (m *minimizer) apply(r removal) {
	f, _ := m.db.Formula(r.symbol)
	next := f.Clone()
	if r.whole {
		next = slices.Delete(next, r.clause, r.clause+1)
		m.report.RemovedClauses++
		logrus.Debugf("dropped clause %v of %s", f[r.clause], m.name(r.symbol))
	} else {
		next[r.clause] = next[r.clause].Without(r.member)
		m.report.RemovedSymbols++
		logrus.Debugf("dropped %s from a clause of %s", m.name(r.member), m.name(r.symbol))
	}
	m.db.setFormula(r.symbol, next)
}

// flagUnsettled records which entries were still reducible when the
// iteration cap fired, so the caller can report them instead of hanging.
func (m *minimizer) flagUnsettled() {
	oracle := NewOracle(m.db)
	for _, s := range m.db.Symbols() {
		_, clauseFound := m.findClause(oracle, s)
		_, memberFound := m.findMember(oracle, s)
		if clauseFound || memberFound {
			if q, exists := m.db.Table().Resolve(s); exists {
				m.report.Unsettled = append(m.report.Unsettled, q)
			}
		}
	}
	logrus.Warnf("minimization hit the %d iteration cap with %d entries still changing",
		m.report.Iterations, len(m.report.Unsettled))
}

// finish canonicalizes every surviving formula and classifies the end states.
func (m *minimizer) finish() {
	for _, s := range m.db.Symbols() {
		if m.skip[s] {
			continue
		}
		f, _ := m.db.Formula(s)
		f = f.canonical()
		m.db.setFormula(s, f)
		for _, clause := range f {
			if len(clause) == 0 {
				m.fail(s, fmt.Errorf("minimization emptied a clause of %s", m.name(s)))
				break
			}
		}
		if len(f) == 0 {
			if q, exists := m.db.Table().Resolve(s); exists {
				m.report.Vacuous = append(m.report.Vacuous, q)
			}
		}
	}
}

func (m *minimizer) fail(s Symbol, err error) {
	m.skip[s] = true
	m.report.Failed[m.name(s)] = err
	logrus.Warnf("skipping entry: %v", err)
}

func (m *minimizer) name(s Symbol) string {
	q, exists := m.db.Table().Resolve(s)
	if !exists {
		return fmt.Sprintf("symbol %d", s)
	}
	return q.String()
}
