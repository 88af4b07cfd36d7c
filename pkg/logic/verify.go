package logic

import (
	"strconv"

	"github.com/crillab/gophersat/bf"
)

// Verifier checks semantic equivalence of two formulas with the implication
// database as background theory: an assignment only counts when every
// satisfied symbol's own requirement formula is satisfied as well, since a
// qualification cannot be held without its prerequisites.
type Verifier struct {
	db *Database
}

func NewVerifier(db *Database) *Verifier {
	return &Verifier{db: db}
}

// Equivalent reports whether a and b accept exactly the same assignments
// among those consistent with the database. The check hands the SAT solver
// the theory conjoined with the symmetric difference of the two formulas;
// equivalence holds exactly when that is unsatisfiable.
func (v *Verifier) Equivalent(a, b Formula) bool {
	fa := toBF(a)
	fb := toBF(b)
	differs := bf.Or(bf.And(fa, bf.Not(fb)), bf.And(fb, bf.Not(fa)))
	return bf.Solve(bf.And(v.theory(), differs)) == nil
}

func (v *Verifier) theory() bf.Formula {
	theory := bf.True
	for _, s := range v.db.Symbols() {
		f, _ := v.db.Formula(s)
		theory = bf.And(theory, bf.Implies(bfVar(s), toBF(f)))
	}
	return theory
}

func toBF(f Formula) bf.Formula {
	ret := bf.True
	for _, clause := range f {
		if len(clause) == 0 {
			return bf.False
		}
		vars := make([]bf.Formula, 0, len(clause))
		for _, s := range clause {
			vars = append(vars, bfVar(s))
		}
		ret = bf.And(ret, bf.Or(vars...))
	}
	return ret
}

func bfVar(s Symbol) bf.Formula {
	return bf.Var("x" + strconv.Itoa(int(s)))
}
