package main

import (
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/EtomicBomb/cab/pkg/api"
)

func TestReadCoursesRoundTripsMinimizeOutput(t *testing.T) {
	g := NewGomegaWithT(t)
	file := filepath.Join(t.TempDir(), "courses.json")
	courses := []api.Course{{
		Code:      api.CourseCode{Subject: "CSCI", Number: "0200"},
		Title:     "Program Design",
		Semesters: api.UndergraduateRange,
		Prerequisites: api.Any(
			api.Leaf(api.CourseCode{Subject: "CSCI", Number: "0150"}),
			api.Leaf(api.CourseCode{Subject: "CSCI", Number: "0170"}),
		),
	}}
	g.Expect(write(file, courses)).To(Succeed())

	back, err := readCourses(file)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(back).To(HaveLen(1))
	g.Expect(back[0].Code).To(Equal(courses[0].Code))
	g.Expect(back[0].Title).To(Equal("Program Design"))
	g.Expect(back[0].Semesters).To(Equal(api.UndergraduateRange))
	g.Expect(back[0].Prerequisites.Equal(courses[0].Prerequisites)).To(BeTrue())
}

func TestReadCoursesMissingFile(t *testing.T) {
	g := NewGomegaWithT(t)
	_, err := readCourses(filepath.Join(t.TempDir(), "missing.json"))
	g.Expect(err).To(HaveOccurred())
}
