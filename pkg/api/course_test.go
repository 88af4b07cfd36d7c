package api

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/gomega"
)

func TestParseSemester(t *testing.T) {
	g := NewGomegaWithT(t)
	tests := []struct {
		text     string
		expected Semester
	}{
		{text: "01", expected: 0},
		{text: "13", expected: 12},
		{text: "GM", expected: 13},
		{text: "GP", expected: 14},
		{text: "F2", expected: 1},
	}
	for _, tt := range tests {
		semester, err := ParseSemester(tt.text)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(semester).To(Equal(tt.expected))
	}
	_, err := ParseSemester("teenager")
	g.Expect(err).To(HaveOccurred())
	_, err = ParseSemester("17")
	g.Expect(err).To(HaveOccurred())
}

func TestSemesterString(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(Semester(0).String()).To(Equal("01"))
	g.Expect(Semester(12).String()).To(Equal("13"))
	g.Expect(Semester(13).String()).To(Equal("GM"))
	g.Expect(Semester(14).String()).To(Equal("GP"))
}

func TestSemesterRangeParseAndComplement(t *testing.T) {
	g := NewGomegaWithT(t)
	r, err := ParseSemesterRange("05, 06, 07, 08, 09, 10, 11, 12 or 13")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(r.String()).To(Equal("05, 06, 07, 08, 09, 10, 11, 12, 13"))
	g.Expect(r.Complement().String()).To(Equal("01, 02, 03, 04, GM, GP"))
}

func TestSemesterRangeAdd(t *testing.T) {
	g := NewGomegaWithT(t)
	semester, err := ParseSemester("05")
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(EmptyRange.Add(semester).String()).To(Equal("05"))
}

func TestSemesterRangeConstants(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(SemesterRange(1<<4 - 1).String()).To(Equal("01, 02, 03, 04"))
	g.Expect(FullRange.IsFull()).To(BeTrue())
	g.Expect(UndergraduateRange.String()).To(Equal("01, 02, 03, 04, 05, 06, 07, 08"))
	g.Expect(GraduateRange.String()).To(Equal("09, 10, 11, 12, 13, GM, GP"))
	g.Expect(UndergraduateRange.Intersect(GraduateRange)).To(Equal(EmptyRange))
}

func TestSemesterRangeJSON(t *testing.T) {
	g := NewGomegaWithT(t)
	r, err := ParseSemesterRange("01, GM")
	g.Expect(err).ToNot(HaveOccurred())
	marshaled, err := json.Marshal(r)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(string(marshaled)).To(Equal("[0,13]"))

	var back SemesterRange
	g.Expect(json.Unmarshal(marshaled, &back)).To(Succeed())
	g.Expect(back).To(Equal(r))
}

func TestDemographicsJSON(t *testing.T) {
	g := NewGomegaWithT(t)
	var demographics Demographics
	g.Expect(json.Unmarshal([]byte(`{"FY": 3, "Gr": 2}`), &demographics)).To(Succeed())
	g.Expect(demographics).To(Equal(Demographics{Freshmen: 3, Graduates: 2}))
}
