package logic

import (
	"fmt"

	"github.com/EtomicBomb/cab/pkg/api"
)

// FromTree converts a requirement tree to conjunctive normal form, interning
// every qualification it mentions. A nil tree is no requirement at all.
func FromTree(tree *api.PrerequisiteTree, table *SymbolTable) Formula {
	if tree == nil {
		return True()
	}
	if tree.IsLeaf() {
		return Formula{NewClause(table.Intern(tree.Qualification))}
	}
	if tree.Operator == api.OperatorAny {
		ret := False()
		for _, child := range tree.Children {
			ret = Or(ret, FromTree(child, table))
		}
		return ret
	}
	ret := True()
	for _, child := range tree.Children {
		ret = And(ret, FromTree(child, table))
	}
	return ret
}

// ToTree reconstructs a requirement tree, collapsing singleton clauses and
// formulas. A formula with no clauses is always satisfied and yields a nil
// tree. A formula holding an empty clause can never be satisfied; that state
// indicates contradictory source data and is rejected rather than dropped.
func ToTree(f Formula, table *SymbolTable) (*api.PrerequisiteTree, error) {
	children := make([]*api.PrerequisiteTree, 0, len(f))
	for _, clause := range f {
		if len(clause) == 0 {
			return nil, fmt.Errorf("formula %v contains an unsatisfiable empty clause", f)
		}
		leaves := make([]*api.PrerequisiteTree, 0, len(clause))
		for _, s := range clause {
			q, exists := table.Resolve(s)
			if !exists {
				return nil, fmt.Errorf("symbol %d is unknown to the symbol table", s)
			}
			leaves = append(leaves, api.Leaf(q))
		}
		if len(leaves) == 1 {
			children = append(children, leaves[0])
		} else {
			children = append(children, api.Any(leaves...))
		}
	}
	switch len(children) {
	case 0:
		return nil, nil
	case 1:
		return children[0], nil
	}
	return api.All(children...), nil
}
