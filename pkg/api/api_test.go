package api

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/gomega"
)

func TestParseCourseCode(t *testing.T) {
	g := NewGomegaWithT(t)
	code, err := ParseCourseCode("CSCI 0150")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(code).To(Equal(CourseCode{Subject: "CSCI", Number: "0150"}))
	g.Expect(code.String()).To(Equal("CSCI 0150"))

	_, err = ParseCourseCode("CSCI")
	g.Expect(err).To(HaveOccurred())
	_, err = ParseCourseCode("CSCI 0150 extra")
	g.Expect(err).To(HaveOccurred())
}

func TestTreeJSONShapes(t *testing.T) {
	tests := []struct {
		name string
		tree *PrerequisiteTree
		json string
	}{
		{
			name: "course leaf",
			tree: Leaf(CourseCode{Subject: "CSCI", Number: "0150"}),
			json: `{"course":{"subject":"CSCI","number":"0150"}}`,
		},
		{
			name: "exam leaf",
			tree: Leaf(ExamScore{Exam: "AP Calculus AB", Score: 4}),
			json: `{"exam":"AP Calculus AB","score":4}`,
		},
		{
			name: "operator",
			tree: Any(
				Leaf(CourseCode{Subject: "CSCI", Number: "0150"}),
				Leaf(CourseCode{Subject: "CSCI", Number: "0170"}),
			),
			json: `{"any":[{"course":{"subject":"CSCI","number":"0150"}},{"course":{"subject":"CSCI","number":"0170"}}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			marshaled, err := json.Marshal(tt.tree)
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(string(marshaled)).To(MatchJSON(tt.json))

			back := &PrerequisiteTree{}
			g.Expect(json.Unmarshal([]byte(tt.json), back)).To(Succeed())
			g.Expect(back.Equal(tt.tree)).To(BeTrue(), "got %v", back)
		})
	}
}

func TestTreeUnmarshalRejectsUnknownShape(t *testing.T) {
	g := NewGomegaWithT(t)
	tree := &PrerequisiteTree{}
	g.Expect(json.Unmarshal([]byte(`{"neither": 1}`), tree)).ToNot(Succeed())
}

func TestTreeCompare(t *testing.T) {
	g := NewGomegaWithT(t)
	course := Leaf(CourseCode{Subject: "CSCI", Number: "0150"})
	laterCourse := Leaf(CourseCode{Subject: "CSCI", Number: "0170"})
	exam := Leaf(ExamScore{Exam: "AP Calculus AB", Score: 4})
	operator := Any(course, laterCourse)

	g.Expect(course.Compare(course)).To(Equal(0))
	g.Expect(course.Compare(laterCourse)).To(BeNumerically("<", 0))
	g.Expect(course.Compare(exam)).To(BeNumerically("<", 0))
	g.Expect(course.Compare(operator)).To(BeNumerically("<", 0))
	g.Expect(operator.Compare(course)).To(BeNumerically(">", 0))
	g.Expect(Any(course).Compare(All(course))).To(BeNumerically("<", 0))
	g.Expect(Any(course).Compare(Any(course, exam))).To(BeNumerically("<", 0))
}

func TestTreeString(t *testing.T) {
	g := NewGomegaWithT(t)
	tree := All(
		Leaf(CourseCode{Subject: "CSCI", Number: "0150"}),
		Any(
			Leaf(CourseCode{Subject: "MATH", Number: "0100"}),
			Leaf(ExamScore{Exam: "AP Calculus AB", Score: 4}),
		),
	)
	g.Expect(tree.String()).To(Equal("all(CSCI 0150, any(MATH 0100, 4 on 'AP Calculus AB'))"))
}

func TestQualifications(t *testing.T) {
	g := NewGomegaWithT(t)
	shared := Leaf(CourseCode{Subject: "CSCI", Number: "0150"})
	tree := All(shared, Any(shared, Leaf(CourseCode{Subject: "CSCI", Number: "0170"})))
	g.Expect(tree.Qualifications()).To(Equal([]Qualification{
		CourseCode{Subject: "CSCI", Number: "0150"},
		CourseCode{Subject: "CSCI", Number: "0170"},
	}))
}
