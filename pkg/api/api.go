package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Qualification is one atomic requirement: either having completed a course
// or having reached a minimum score on an exam. Both concrete types are plain
// value structs so a Qualification can serve as a map key.
type Qualification interface {
	fmt.Stringer
	isQualification()
}

type CourseCode struct {
	Subject string `json:"subject"`
	Number  string `json:"number"`
}

func (CourseCode) isQualification() {}

func (c CourseCode) String() string {
	return c.Subject + " " + c.Number
}

// ParseCourseCode parses the "SUBJ 1234" form used throughout the catalog.
func ParseCourseCode(text string) (CourseCode, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return CourseCode{}, fmt.Errorf("invalid course code %q", text)
	}
	return CourseCode{Subject: fields[0], Number: fields[1]}, nil
}

type ExamScore struct {
	Exam  string `json:"exam"`
	Score int    `json:"score"`
}

func (ExamScore) isQualification() {}

func (e ExamScore) String() string {
	return fmt.Sprintf("%d on '%s'", e.Score, e.Exam)
}

type Operator string

const (
	OperatorAny Operator = "any"
	OperatorAll Operator = "all"
)

// PrerequisiteTree is a requirement tree: either a single qualification leaf
// or an any/all operator over child trees.
type PrerequisiteTree struct {
	Qualification Qualification
	Operator      Operator
	Children      []*PrerequisiteTree
}

func Leaf(q Qualification) *PrerequisiteTree {
	return &PrerequisiteTree{Qualification: q}
}

func Any(children ...*PrerequisiteTree) *PrerequisiteTree {
	return &PrerequisiteTree{Operator: OperatorAny, Children: children}
}

func All(children ...*PrerequisiteTree) *PrerequisiteTree {
	return &PrerequisiteTree{Operator: OperatorAll, Children: children}
}

func (t *PrerequisiteTree) IsLeaf() bool {
	return t.Qualification != nil
}

// Qualifications returns every distinct qualification mentioned in the tree.
func (t *PrerequisiteTree) Qualifications() []Qualification {
	seen := map[Qualification]bool{}
	var ret []Qualification
	var walk func(*PrerequisiteTree)
	walk = func(t *PrerequisiteTree) {
		if t.IsLeaf() {
			if !seen[t.Qualification] {
				seen[t.Qualification] = true
				ret = append(ret, t.Qualification)
			}
			return
		}
		for _, child := range t.Children {
			walk(child)
		}
	}
	walk(t)
	return ret
}

func (t *PrerequisiteTree) Equal(other *PrerequisiteTree) bool {
	return t.Compare(other) == 0
}

// Compare defines a total order over trees: leaves sort before operator
// nodes, course leaves before exam leaves, operators by name, and otherwise
// field by field with children compared lexicographically. The order carries
// no meaning beyond giving normalization a deterministic output.
func (t *PrerequisiteTree) Compare(other *PrerequisiteTree) int {
	if t.IsLeaf() != other.IsLeaf() {
		if t.IsLeaf() {
			return -1
		}
		return 1
	}
	if t.IsLeaf() {
		return compareQualifications(t.Qualification, other.Qualification)
	}
	if t.Operator != other.Operator {
		if t.Operator == OperatorAny {
			return -1
		}
		return 1
	}
	for i := 0; i < len(t.Children) && i < len(other.Children); i++ {
		if c := t.Children[i].Compare(other.Children[i]); c != 0 {
			return c
		}
	}
	return len(t.Children) - len(other.Children)
}

func compareQualifications(a, b Qualification) int {
	ac, aIsCourse := a.(CourseCode)
	bc, bIsCourse := b.(CourseCode)
	if aIsCourse != bIsCourse {
		if aIsCourse {
			return -1
		}
		return 1
	}
	if aIsCourse {
		if c := strings.Compare(ac.Subject, bc.Subject); c != 0 {
			return c
		}
		return strings.Compare(ac.Number, bc.Number)
	}
	ae := a.(ExamScore)
	be := b.(ExamScore)
	if c := strings.Compare(ae.Exam, be.Exam); c != 0 {
		return c
	}
	return ae.Score - be.Score
}

func (t *PrerequisiteTree) String() string {
	if t.IsLeaf() {
		return t.Qualification.String()
	}
	parts := make([]string, 0, len(t.Children))
	for _, child := range t.Children {
		parts = append(parts, child.String())
	}
	return fmt.Sprintf("%s(%s)", t.Operator, strings.Join(parts, ", "))
}

func (t *PrerequisiteTree) MarshalJSON() ([]byte, error) {
	switch q := t.Qualification.(type) {
	case CourseCode:
		return json.Marshal(map[string]CourseCode{"course": q})
	case ExamScore:
		return json.Marshal(q)
	}
	return json.Marshal(map[Operator][]*PrerequisiteTree{t.Operator: t.Children})
}

func (t *PrerequisiteTree) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	switch {
	case fields["course"] != nil:
		code := CourseCode{}
		if err := json.Unmarshal(fields["course"], &code); err != nil {
			return err
		}
		*t = PrerequisiteTree{Qualification: code}
	case fields["exam"] != nil:
		exam := ExamScore{}
		if err := json.Unmarshal(data, &exam); err != nil {
			return err
		}
		*t = PrerequisiteTree{Qualification: exam}
	case fields["any"] != nil, fields["all"] != nil:
		operator := OperatorAny
		raw := fields["any"]
		if raw == nil {
			operator = OperatorAll
			raw = fields["all"]
		}
		var children []*PrerequisiteTree
		if err := json.Unmarshal(raw, &children); err != nil {
			return err
		}
		*t = PrerequisiteTree{Operator: operator, Children: children}
	default:
		return fmt.Errorf("expected a `course`, `exam`, `any` or `all` key")
	}
	return nil
}
