// Package graph renders the prerequisite structure of the catalog as one
// Graphviz digraph with a cluster per subject.
//
// Within a cluster, courses and exam scores are leaf nodes and any/all
// operators become intermediate nodes. Structurally identical operator
// subtrees are shared, so two courses with the same alternatives point at
// one node. Courses with no edges at all are laid out on an invisible grid
// so a sparse subject stays roughly square instead of one long row.
package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/EtomicBomb/cab/pkg/subject"
)

const defaultColor = "808000"

// Graphviz lays out every course of every subject, consulting the registry
// for cluster colors.
func Graphviz(courses []api.Course, registry *subject.Registry) string {
	ids := &idGenerator{}
	var order []string
	seen := map[string]bool{}
	for _, course := range courses {
		if !seen[course.Code.Subject] {
			seen[course.Code.Subject] = true
			order = append(order, course.Code.Subject)
		}
	}
	var b strings.Builder
	b.WriteString("digraph {\npackmode=\"graph\"\n")
	for _, subj := range order {
		newSubjectGraph(subj, courses, ids).cluster(&b, registry)
	}
	b.WriteString("}\n")
	return b.String()
}

type idGenerator struct {
	last int
}

func (g *idGenerator) next() int {
	g.last++
	return g.last
}

type node struct {
	// either a leaf qualification or an operator
	qual         api.Qualification
	op           api.Operator
	dependencies []int
	id           int
}

func (n *node) isOperator(op api.Operator) bool {
	return n.qual == nil && n.op == op
}

type subjectGraph struct {
	subject string
	nodes   []*node
}

func newSubjectGraph(subj string, courses []api.Course, ids *idGenerator) *subjectGraph {
	g := &subjectGraph{subject: subj}
	for _, course := range courses {
		if course.Code.Subject != subj {
			continue
		}
		index := g.insertQualification(course.Code, ids)
		if course.Prerequisites != nil {
			g.insert(index, course.Prerequisites, ids)
		}
	}
	return g
}

// insert adds the tree below the given node, sharing structurally identical
// subtrees that already exist in this cluster.
func (g *subjectGraph) insert(parent int, tree *api.PrerequisiteTree, ids *idGenerator) {
	var index int
	if tree.IsLeaf() {
		index = g.insertQualification(tree.Qualification, ids)
	} else {
		index = g.findOperator(tree)
		if index < 0 {
			index = len(g.nodes)
			g.nodes = append(g.nodes, &node{op: tree.Operator, id: ids.next()})
			for _, child := range tree.Children {
				g.insert(index, child, ids)
			}
		}
	}
	g.nodes[parent].dependencies = append(g.nodes[parent].dependencies, index)
}

func (g *subjectGraph) insertQualification(q api.Qualification, ids *idGenerator) int {
	for i, n := range g.nodes {
		if n.qual == q {
			return i
		}
	}
	g.nodes = append(g.nodes, &node{qual: q, id: ids.next()})
	return len(g.nodes) - 1
}

func (g *subjectGraph) findOperator(tree *api.PrerequisiteTree) int {
	for i, n := range g.nodes {
		if n.isOperator(tree.Operator) && g.matches(n.dependencies, tree.Children) {
			return i
		}
	}
	return -1
}

func (g *subjectGraph) matches(dependencies []int, children []*api.PrerequisiteTree) bool {
	if len(dependencies) != len(children) {
		return false
	}
	for i, d := range dependencies {
		child := children[i]
		n := g.nodes[d]
		if child.IsLeaf() {
			if n.qual != child.Qualification {
				return false
			}
		} else if !n.isOperator(child.Operator) || !g.matches(n.dependencies, child.Children) {
			return false
		}
	}
	return true
}

func (g *subjectGraph) isSinglet(index int) bool {
	if len(g.nodes[index].dependencies) > 0 {
		return false
	}
	for _, n := range g.nodes {
		for _, d := range n.dependencies {
			if d == index {
				return false
			}
		}
	}
	return true
}

func (g *subjectGraph) cluster(b *strings.Builder, registry *subject.Registry) {
	fmt.Fprintf(b, "subgraph cluster_%s {\n", g.subject)
	fmt.Fprintf(b, "packmode=\"graph\"\n")
	label := g.subject
	color := defaultColor
	if info, exists := registry.Info(g.subject); exists {
		label = info.Name
		color = info.Color
	}
	fmt.Fprintf(b, "label=%q\n", label)
	fmt.Fprintf(b, "bgcolor=\"#%s\"\n", color)

	for _, n := range g.nodes {
		switch q := n.qual.(type) {
		case api.ExamScore:
			fmt.Fprintf(b, "%d [label=%q,shape=box,color=blue]\n", n.id, q.String())
		case api.CourseCode:
			fmt.Fprintf(b, "%d [label=\"\",shape=box, fixedsize=true, width=1.4, height=0.6, class=\"qual_%s\"]\n", n.id, q)
		default:
			fmt.Fprintf(b, "%d [label=%s]\n", n.id, n.op)
		}
	}

	var singlets, others []*node
	for i, n := range g.nodes {
		if g.isSinglet(i) {
			singlets = append(singlets, n)
		} else {
			others = append(others, n)
		}
	}

	// chain the singlets into rows of an invisible square-ish grid
	side := int(math.Sqrt(float64(len(singlets)))) + 1
	fmt.Fprintf(b, "subgraph cluster_%s_grid {\nstyle=\"invis\"\n", g.subject)
	for i := 0; i+1 < len(singlets); i++ {
		if i%side != 0 {
			fmt.Fprintf(b, "%d -> %d [style=\"invis\"]\n", singlets[i].id, singlets[i+1].id)
		}
	}
	fmt.Fprintf(b, "}\n")

	for _, n := range others {
		for _, d := range n.dependencies {
			fmt.Fprintf(b, "%d -> %d\n", g.nodes[d].id, n.id)
		}
	}
	fmt.Fprintf(b, "}\n")
}
