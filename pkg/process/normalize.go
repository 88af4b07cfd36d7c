package process

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/EtomicBomb/cab/pkg/parse"
)

// Normalizer rewrites prerequisite trees into a canonical shape: known
// equivalent courses are widened to their whole equivalence group, nested
// same-operator nodes are flattened, children are sorted, duplicate and
// same-exam leaves are collapsed, and single-child operators are unboxed.
type Normalizer struct {
	equivalents map[api.Qualification]*api.PrerequisiteTree
}

// NewNormalizer parses equivalence groups, one prerequisite sentence per
// line, each naming a set of mutually interchangeable qualifications.
func NewNormalizer(groups []string) (*Normalizer, error) {
	equivalents := map[api.Qualification]*api.PrerequisiteTree{}
	for _, group := range groups {
		tree, err := parse.Prerequisites(group)
		if err != nil {
			return nil, fmt.Errorf("equivalence group %q: %v", group, err)
		}
		for _, q := range tree.Qualifications() {
			equivalents[q] = tree
		}
	}
	return &Normalizer{equivalents: equivalents}, nil
}

func (n *Normalizer) Normalize(tree *api.PrerequisiteTree) *api.PrerequisiteTree {
	if tree == nil {
		return nil
	}
	tree = n.widen(tree)
	tree = flatten(tree)
	tree = dedupe(tree)
	return unbox(tree)
}

// widen replaces a qualification with its full equivalence group, so either
// member of a cross-listed pair satisfies a requirement naming one of them.
func (n *Normalizer) widen(tree *api.PrerequisiteTree) *api.PrerequisiteTree {
	if tree.IsLeaf() {
		if group, exists := n.equivalents[tree.Qualification]; exists {
			return group
		}
		return tree
	}
	children := make([]*api.PrerequisiteTree, 0, len(tree.Children))
	for _, child := range tree.Children {
		children = append(children, n.widen(child))
	}
	return &api.PrerequisiteTree{Operator: tree.Operator, Children: children}
}

// flatten merges same-operator children into their parent and sorts every
// child list in descending order.
func flatten(tree *api.PrerequisiteTree) *api.PrerequisiteTree {
	if tree.IsLeaf() {
		return tree
	}
	var children []*api.PrerequisiteTree
	for _, child := range tree.Children {
		child = flatten(child)
		if !child.IsLeaf() && child.Operator == tree.Operator {
			children = append(children, child.Children...)
		} else {
			children = append(children, child)
		}
	}
	slices.SortFunc(children, func(a, b *api.PrerequisiteTree) int {
		return b.Compare(a)
	})
	return &api.PrerequisiteTree{Operator: tree.Operator, Children: children}
}

// dedupe drops adjacent duplicate children. Exam leaves naming the same exam
// collapse too; the sort leaves the higher score first, and within one
// operator the score cutoffs are interchangeable for our purposes.
func dedupe(tree *api.PrerequisiteTree) *api.PrerequisiteTree {
	if tree.IsLeaf() {
		return tree
	}
	var children []*api.PrerequisiteTree
	for _, child := range tree.Children {
		child = dedupe(child)
		if len(children) > 0 && sameLeaf(children[len(children)-1], child) {
			continue
		}
		children = append(children, child)
	}
	return &api.PrerequisiteTree{Operator: tree.Operator, Children: children}
}

func sameLeaf(a, b *api.PrerequisiteTree) bool {
	if a.Equal(b) {
		return true
	}
	aExam, aOk := a.Qualification.(api.ExamScore)
	bExam, bOk := b.Qualification.(api.ExamScore)
	return aOk && bOk && aExam.Exam == bExam.Exam
}

func unbox(tree *api.PrerequisiteTree) *api.PrerequisiteTree {
	if tree.IsLeaf() {
		return tree
	}
	children := make([]*api.PrerequisiteTree, 0, len(tree.Children))
	for _, child := range tree.Children {
		children = append(children, unbox(child))
	}
	if len(children) == 1 {
		return children[0]
	}
	return &api.PrerequisiteTree{Operator: tree.Operator, Children: children}
}
