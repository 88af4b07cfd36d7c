// Package process turns raw catalog records into aggregated courses.
//
// The catalog API returns one record per taught section per term, with most
// of the interesting data buried in HTML fragments. Records for the same
// course are merged into one Course: the newest record supplies the title,
// description and enrollment limits, while prerequisites come from the
// newest record that has any.
package process

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/EtomicBomb/cab/pkg/parse"
)

// Raw is one catalog record exactly as the details endpoint returns it.
type Raw struct {
	Permreq                  string `json:"permreq"`
	Code                     string `json:"code"`
	Section                  string `json:"section"`
	Title                    string `json:"title"`
	Description              string `json:"description"`
	RegistrationRestrictions string `json:"registration_restrictions"`
	Seats                    string `json:"seats"`
	InstructorDetailHTML     string `json:"instructordetail_html"`
	RegdemogHTML             string `json:"regdemog_html"`
	RegdemogJSON             string `json:"regdemog_json"`
	Srcdb                    string `json:"srcdb"`
}

// DecodeRecords reads a stream of concatenated JSON records.
func DecodeRecords(source io.Reader) ([]Raw, error) {
	decoder := json.NewDecoder(source)
	var ret []Raw
	for {
		var raw Raw
		err := decoder.Decode(&raw)
		if err == io.EOF {
			return ret, nil
		}
		if err != nil {
			return ret, fmt.Errorf("malformed record after %d records: %v", len(ret), err)
		}
		ret = append(ret, raw)
	}
}

var (
	seatsMaxPattern       = regexp.MustCompile(`<span class="seats_max">([0-9]+?)</span>`)
	seatsAvailablePattern = regexp.MustCompile(`<span class="seats_avail">(-?[0-9]+?)</span>`)
	enrollmentPattern     = regexp.MustCompile(`Current enrollment: ([0-9]+)`)
	sectionPattern        = regexp.MustCompile(`^S([0-9]{2})$`)
	titleCodePattern      = regexp.MustCompile(`[A-Z]+ [0-9]{4}[A-Z]?`)
	instructorPattern     = regexp.MustCompile(`<h4>.*?</h4>`)
)

// record is one parsed catalog record, still one per section per term.
type record struct {
	code         api.CourseCode
	restricted   bool
	section      int
	hasSection   bool
	title        string
	aliasOf      *api.CourseCode
	description  string
	quals        qualifications
	enrollment   *int
	instructors  []string
	demographics *api.Demographics
	srcdb        string
}

func newRecord(raw Raw) (record, error) {
	ret := record{srcdb: raw.Srcdb}
	switch raw.Permreq {
	case "Y":
		ret.restricted = true
	case "N":
		ret.restricted = false
	default:
		return record{}, fmt.Errorf("unrecognized permreq %q", raw.Permreq)
	}
	code, err := api.ParseCourseCode(raw.Code)
	if err != nil {
		return record{}, err
	}
	ret.code = code
	if m := sectionPattern.FindStringSubmatch(raw.Section); m != nil {
		ret.section, _ = strconv.Atoi(m[1])
		ret.hasSection = true
	}
	// a title that is itself a course code marks this record as a
	// cross-listing of that canonical course
	if m := titleCodePattern.FindString(raw.Title); m != "" {
		alias, err := api.ParseCourseCode(m)
		if err != nil {
			return record{}, err
		}
		ret.aliasOf = &alias
	} else {
		ret.title = raw.Title
	}
	ret.description = stripHTML(raw.Description)
	ret.quals, err = parseQualifications(raw.RegistrationRestrictions)
	if err != nil {
		return record{}, err
	}
	ret.enrollment = enrollment(raw.Seats, raw.RegdemogHTML)
	ret.instructors = instructors(raw.InstructorDetailHTML)
	var demographics api.Demographics
	if json.Unmarshal([]byte(raw.RegdemogJSON), &demographics) == nil {
		ret.demographics = &demographics
	}
	return ret, nil
}

// enrollment prefers the seat counter and falls back to the demographics
// blurb; some terms only render one of the two.
func enrollment(seats, regdemog string) *int {
	max := seatsMaxPattern.FindStringSubmatch(seats)
	available := seatsAvailablePattern.FindStringSubmatch(seats)
	if max != nil && available != nil {
		m, _ := strconv.Atoi(max[1])
		a, _ := strconv.Atoi(available[1])
		taken := m - a
		return &taken
	}
	if m := enrollmentPattern.FindStringSubmatch(regdemog); m != nil {
		count, _ := strconv.Atoi(m[1])
		return &count
	}
	return nil
}

func instructors(detail string) []string {
	var ret []string
	for _, m := range instructorPattern.FindAllString(detail, -1) {
		name := stripHTML(m)
		if name != "TBD" {
			ret = append(ret, name)
		}
	}
	return ret
}

// stripHTML drops the markup and decodes entities, keeping only text.
func stripHTML(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}

// restrictionsPattern recognizes the fixed sequence of restriction paragraphs
// the catalog renders. Every paragraph is optional, but their order is not.
var restrictionsPattern = regexp.MustCompile(`^(<p class="prereq">Prerequisites?: (?P<prereq>.*?)\.(<br/><sup>\*</sup> May be taken concurrently\.)?</p>)?` +
	`(<p class="cls">Enrollment limited to students with a semester level of (?P<cls>.*?)\.</p>)?` +
	`(<p class="cls">Students with a semester level of (?P<clsc>.*?) may <strong>not</strong> enroll\.</p>)?` +
	`(<p class="maj">Enrollment is limited to students with a major in (?P<maj>.*?)\.</p>)?` +
	`(<p class="maj">Students cannot enroll who have a concentration in (.*?)\.</p>)?` +
	`(<p class="prg">Enrollment limited to students in the (?P<prg>.*?) programs\.</p>)?` +
	`(<p class="prg">Enrollment limited to students in the following programs:<ul>(?P<prgl>.*?)</ul></p>)?` +
	`(<p class="prg">Enrollment limited to students in the (?P<prgs>.*?) program\.</p>)?` +
	`(<p class="prg">Enrollment limited to students in the (?P<prg1>.*?) or (?P<prg2>.*?) programs\.</p>)?` +
	`(<p class="prg">Students in the (.*?) program may <strong>not</strong> enroll\.</p>)?` +
	`(<p class="lvl">Enrollment is limited to (?P<lvl>Undergraduate|Graduate) level students\.</p>)?` +
	`(<p class="lvl">(?P<lvlc>Undergraduate|Graduate) level students may <strong>not</strong> enroll\.</p>)?` +
	`(<p class="chr">Enrollment limited to students in the (?P<chr>.*?) chohort\.</p>)?$`)

var (
	prereqIndex   = restrictionsPattern.SubexpIndex("prereq")
	clsIndex      = restrictionsPattern.SubexpIndex("cls")
	clscIndex     = restrictionsPattern.SubexpIndex("clsc")
	programsIndex = restrictionsPattern.SubexpIndex("prg")
	levelIndex    = restrictionsPattern.SubexpIndex("lvl")
)

// qualifications is what the registration restrictions blob boils down to.
type qualifications struct {
	prerequisites *api.PrerequisiteTree
	programs      []string
	semesters     api.SemesterRange
}

func parseQualifications(restrictions string) (qualifications, error) {
	m := restrictionsPattern.FindStringSubmatch(restrictions)
	if m == nil {
		return qualifications{}, fmt.Errorf("unrecognized registration restrictions %q", restrictions)
	}
	ret := qualifications{semesters: api.FullRange}
	if m[prereqIndex] != "" {
		tree, err := parse.Prerequisites(stripHTML(m[prereqIndex]))
		if err != nil {
			return qualifications{}, fmt.Errorf("prerequisite sentence: %v", err)
		}
		ret.prerequisites = tree
	}
	if m[clsIndex] != "" {
		levels, err := api.ParseSemesterRange(m[clsIndex])
		if err != nil {
			return qualifications{}, err
		}
		ret.semesters = ret.semesters.Intersect(levels)
	}
	if m[clscIndex] != "" {
		levels, err := api.ParseSemesterRange(m[clscIndex])
		if err != nil {
			return qualifications{}, err
		}
		ret.semesters = ret.semesters.Intersect(levels.Complement())
	}
	if m[programsIndex] != "" {
		ret.programs = splitPrograms(m[programsIndex])
	}
	switch m[levelIndex] {
	case "Undergraduate":
		ret.semesters = ret.semesters.Intersect(api.UndergraduateRange)
	case "Graduate":
		ret.semesters = ret.semesters.Intersect(api.GraduateRange)
	}
	return ret, nil
}

func splitPrograms(text string) []string {
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
