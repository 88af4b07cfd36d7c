package logic

import (
	"testing"

	"github.com/onsi/gomega"
)

func TestImpliesSubset(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	oracle := NewOracle(testDatabase(nil))
	g.Expect(oracle.Implies(NewClause(1), NewClause(1, 2), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(1, 2), NewClause(1, 2), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(1, 2), NewClause(1), nil)).To(gomega.BeFalse())
}

func TestImpliesTransitiveChain(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	db := testDatabase(map[Symbol]Formula{
		0: {NewClause(1)},
		1: {NewClause(2)},
		2: {NewClause(3)},
		3: {NewClause(4)},
		4: {NewClause(5)},
	})
	oracle := NewOracle(db)
	g.Expect(oracle.Implies(NewClause(0), NewClause(5), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(0), NewClause(3), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(5), NewClause(0), nil)).To(gomega.BeFalse())
}

func TestImpliesFanOut(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	db := testDatabase(map[Symbol]Formula{
		0: {NewClause(1, 2)},
		1: {NewClause(3)},
		2: {NewClause(3)},
	})
	oracle := NewOracle(db)
	// Either branch of 0's requirement lands on 3, but neither branch alone
	// is forced.
	g.Expect(oracle.Implies(NewClause(0), NewClause(3), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), nil)).To(gomega.BeFalse())
	g.Expect(oracle.Implies(NewClause(0), NewClause(2), nil)).To(gomega.BeFalse())
	g.Expect(oracle.Implies(NewClause(0), NewClause(1, 3), nil)).To(gomega.BeTrue())
}

func TestImpliesDiamond(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	db := testDatabase(map[Symbol]Formula{
		0: {NewClause(1, 2)},
		1: {NewClause(2, 3, 4)},
		2: {NewClause(5)},
		3: {NewClause(5)},
		4: {NewClause(5)},
	})
	oracle := NewOracle(db)
	g.Expect(oracle.Implies(NewClause(0), NewClause(5), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(2), NewClause(3), nil)).To(gomega.BeFalse())
}

func TestImpliesTerminatesOnCycle(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	db := testDatabase(map[Symbol]Formula{
		0: {NewClause(1)},
		1: {NewClause(2)},
		2: {NewClause(0)},
	})
	oracle := NewOracle(db)
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(0), NewClause(3), nil)).To(gomega.BeFalse())
}

func TestImpliesForbiddenClause(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	db := testDatabase(map[Symbol]Formula{
		0: {NewClause(1)},
	})
	oracle := NewOracle(db)
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), nil)).To(gomega.BeTrue())
	// Blocking 0's only clause removes the only substitution path.
	forbidden := &ClauseRef{Symbol: 0, Index: 0}
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), forbidden)).To(gomega.BeFalse())
}

func TestImpliesMemoDistinguishesForbidden(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	db := testDatabase(map[Symbol]Formula{
		0: {NewClause(1)},
	})
	oracle := NewOracle(db)
	// Same query with and without a forbidden clause must not share a memo
	// slot, in either order.
	forbidden := &ClauseRef{Symbol: 0, Index: 0}
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), forbidden)).To(gomega.BeFalse())
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), nil)).To(gomega.BeTrue())
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), forbidden)).To(gomega.BeFalse())
}

func TestImpliesPrunesUnkeyedStrangers(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	db := testDatabase(map[Symbol]Formula{
		0: {NewClause(7)},
	})
	oracle := NewOracle(db)
	// 7 has no entry and is not demanded by the target, so no substitution
	// can discharge it.
	g.Expect(oracle.Implies(NewClause(0), NewClause(1), nil)).To(gomega.BeFalse())
	g.Expect(oracle.Implies(NewClause(0), NewClause(7), nil)).To(gomega.BeTrue())
}
