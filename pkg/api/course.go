package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Semester is a zero-based semester level. Levels 0 through 12 are the
// numbered semesters 01..13, the last two are the graduate levels GM and GP.
type Semester uint16

func ParseSemester(text string) (Semester, error) {
	var level int
	switch text {
	case "GM":
		level = 14
	case "GP":
		level = 15
	case "F2":
		level = 2
	default:
		var err error
		level, err = strconv.Atoi(text)
		if err != nil {
			return 0, fmt.Errorf("invalid semester level %q", text)
		}
	}
	if level < 1 || level > 15 {
		return 0, fmt.Errorf("semester level %q out of range", text)
	}
	return Semester(level - 1), nil
}

func (s Semester) String() string {
	switch s {
	case 13:
		return "GM"
	case 14:
		return "GP"
	}
	return fmt.Sprintf("%02d", s+1)
}

// SemesterRange is a set of semester levels, stored as a bitmask.
type SemesterRange uint16

const (
	FullRange          = SemesterRange(1<<15 - 1)
	EmptyRange         = SemesterRange(0)
	UndergraduateRange = SemesterRange(1<<8 - 1)
	GraduateRange      = FullRange ^ UndergraduateRange
)

// ParseSemesterRange parses lists like "05, 06, 07 or 08".
func ParseSemesterRange(text string) (SemesterRange, error) {
	ret := EmptyRange
	for _, part := range splitList(text) {
		semester, err := ParseSemester(part)
		if err != nil {
			return 0, err
		}
		ret = ret.Add(semester)
	}
	return ret, nil
}

func (r SemesterRange) Add(s Semester) SemesterRange {
	return r | 1<<s
}

func (r SemesterRange) Complement() SemesterRange {
	return r ^ FullRange
}

func (r SemesterRange) Intersect(other SemesterRange) SemesterRange {
	return r & other
}

func (r SemesterRange) IsFull() bool {
	return r == FullRange
}

func (r SemesterRange) Semesters() []Semester {
	var ret []Semester
	for s := Semester(0); s < 15; s++ {
		if r&(1<<s) != 0 {
			ret = append(ret, s)
		}
	}
	return ret
}

func (r SemesterRange) String() string {
	parts := []string{}
	for _, s := range r.Semesters() {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

func (r SemesterRange) MarshalJSON() ([]byte, error) {
	levels := []uint16{}
	for _, s := range r.Semesters() {
		levels = append(levels, uint16(s))
	}
	return json.Marshal(levels)
}

func (r *SemesterRange) UnmarshalJSON(data []byte) error {
	var levels []uint16
	if err := json.Unmarshal(data, &levels); err != nil {
		return err
	}
	ret := EmptyRange
	for _, level := range levels {
		ret = ret.Add(Semester(level))
	}
	*r = ret
	return nil
}

// splitList splits the catalog's "a, b, c or d" enumerations.
func splitList(text string) []string {
	var ret []string
	for _, part := range strings.Split(text, ",") {
		for _, part := range strings.Split(part, " or ") {
			part = strings.TrimSpace(part)
			if part != "" {
				ret = append(ret, part)
			}
		}
	}
	return ret
}

// Demographics counts registered students per class year, using the catalog's
// own field names.
type Demographics struct {
	Freshmen   int `json:"FY,omitempty"`
	Sophomores int `json:"So,omitempty"`
	Juniors    int `json:"Jr,omitempty"`
	Seniors    int `json:"Sr,omitempty"`
	Graduates  int `json:"Gr,omitempty"`
	Others     int `json:"Oth,omitempty"`
}

// Offering is one taught section of a course in one term.
type Offering struct {
	Date         string        `json:"date"`
	Section      int           `json:"section"`
	Instructors  []string      `json:"instructors"`
	Enrollment   *int          `json:"enrollment,omitempty"`
	Demographics *Demographics `json:"demographics,omitempty"`
}

type Course struct {
	Code          CourseCode        `json:"code"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Prerequisites *PrerequisiteTree `json:"prerequisites,omitempty"`
	Semesters     SemesterRange     `json:"semesters"`
	Restricted    bool              `json:"restricted"`
	Aliases       []CourseCode      `json:"aliases,omitempty"`
	Offerings     []Offering        `json:"offerings"`
}
