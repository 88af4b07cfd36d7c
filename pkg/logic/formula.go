package logic

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Clause is a set of symbols of which at least one must be satisfied. Members
// are kept sorted and duplicate free so clauses can be compared and used as
// hash keys by content. An empty clause cannot be satisfied.
type Clause []Symbol

func NewClause(symbols ...Symbol) Clause {
	c := slices.Clone(symbols)
	slices.Sort(c)
	return slices.Compact(c)
}

func (c Clause) Contains(s Symbol) bool {
	_, found := slices.BinarySearch(c, s)
	return found
}

// SubsetOf reports whether every member of c appears in other.
func (c Clause) SubsetOf(other Clause) bool {
	i := 0
	for _, s := range c {
		for i < len(other) && other[i] < s {
			i++
		}
		if i == len(other) || other[i] != s {
			return false
		}
	}
	return true
}

func (c Clause) Union(other Clause) Clause {
	ret := make(Clause, 0, len(c)+len(other))
	i, j := 0, 0
	for i < len(c) && j < len(other) {
		switch {
		case c[i] < other[j]:
			ret = append(ret, c[i])
			i++
		case c[i] > other[j]:
			ret = append(ret, other[j])
			j++
		default:
			ret = append(ret, c[i])
			i++
			j++
		}
	}
	ret = append(ret, c[i:]...)
	ret = append(ret, other[j:]...)
	return ret
}

// Without returns a copy of c with s removed.
func (c Clause) Without(s Symbol) Clause {
	ret := make(Clause, 0, len(c))
	for _, member := range c {
		if member != s {
			ret = append(ret, member)
		}
	}
	return ret
}

func (c Clause) Equal(other Clause) bool {
	return slices.Equal(c, other)
}

// key is a content hash key for seen sets and memo tables.
func (c Clause) key() string {
	var b strings.Builder
	for i, s := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(s)))
	}
	return b.String()
}

func (c Clause) String() string {
	return "{" + c.key() + "}"
}

// Formula is a conjunction of clauses: every clause must be satisfied.
type Formula []Clause

// True is the identity of And: no clauses, always satisfied.
func True() Formula {
	return Formula{}
}

// False is the identity of Or: a single empty clause. Distributing it against
// any formula returns that formula unchanged, and as a standalone requirement
// it can never be satisfied.
func False() Formula {
	return Formula{Clause{}}
}

// And concatenates the clause lists of both operands.
func And(a, b Formula) Formula {
	ret := make(Formula, 0, len(a)+len(b))
	ret = append(ret, a...)
	ret = append(ret, b...)
	return ret
}

// Or distributes clause-wise: the result holds the union of every clause of a
// with every clause of b. The clause count is the product of the operands'
// counts; the minimizer is expected to prune the blow-up afterwards.
func Or(a, b Formula) Formula {
	ret := make(Formula, 0, len(a)*len(b))
	for _, ca := range a {
		for _, cb := range b {
			ret = append(ret, ca.Union(cb))
		}
	}
	return ret
}

func (f Formula) Equal(other Formula) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if !f[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (f Formula) Clone() Formula {
	ret := make(Formula, len(f))
	for i, clause := range f {
		ret[i] = slices.Clone(clause)
	}
	return ret
}

// Symbols returns every distinct symbol mentioned in the formula.
func (f Formula) Symbols() Clause {
	ret := Clause{}
	for _, clause := range f {
		ret = ret.Union(clause)
	}
	return ret
}

// Size is the total symbol count over all clauses.
func (f Formula) Size() int {
	size := 0
	for _, clause := range f {
		size += len(clause)
	}
	return size
}

func (f Formula) String() string {
	parts := make([]string, 0, len(f))
	for _, clause := range f {
		parts = append(parts, clause.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// canonical sorts the clause list and removes duplicate clauses, for
// deterministic output. The satisfied-assignment set is unchanged.
func (f Formula) canonical() Formula {
	ret := f.Clone()
	slices.SortFunc(ret, compareClauses)
	return slices.CompactFunc(ret, Clause.Equal)
}

func compareClauses(a, b Clause) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return len(a) - len(b)
}
