package main

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/EtomicBomb/cab/pkg/logic"
)

func TestBuildDatabaseSkipsCoursesWithoutPrerequisites(t *testing.T) {
	g := NewGomegaWithT(t)
	courses := []api.Course{
		{Code: api.CourseCode{Subject: "CSCI", Number: "0150"}},
		{
			Code:          api.CourseCode{Subject: "CSCI", Number: "0200"},
			Prerequisites: api.Leaf(api.CourseCode{Subject: "CSCI", Number: "0150"}),
		},
	}
	db, symbols := buildDatabase(courses)
	g.Expect(db.Len()).To(Equal(1))
	g.Expect(symbols).To(HaveKey(1))
	g.Expect(symbols).ToNot(HaveKey(0))

	// a course that never stated a prerequisite is not an entry, so the
	// report only lists entries minimization actually emptied
	report := logic.Minimize(db)
	g.Expect(report.Vacuous).To(BeEmpty())
	g.Expect(report.Failed).To(BeEmpty())
}
