package process

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/EtomicBomb/cab/pkg/api"
)

// Courses aggregates raw records into one course per canonical code, sorted
// by code. Records that fail to parse are logged and skipped so a single
// malformed term cannot sink the whole catalog.
func Courses(raws []Raw) []api.Course {
	type details struct {
		offerings []record
		aliases   map[api.CourseCode]bool
	}
	byCode := map[api.CourseCode]*details{}
	get := func(code api.CourseCode) *details {
		d, exists := byCode[code]
		if !exists {
			d = &details{aliases: map[api.CourseCode]bool{}}
			byCode[code] = d
		}
		return d
	}
	for _, raw := range raws {
		rec, err := newRecord(raw)
		if err != nil {
			logrus.Warnf("skipping record %s %s: %v", raw.Code, raw.Srcdb, err)
			continue
		}
		switch {
		case rec.aliasOf != nil:
			// the cross-listed record's own data is a copy of the
			// canonical course; only the alias relation survives
			get(*rec.aliasOf).aliases[rec.code] = true
		case rec.hasSection:
			get(rec.code).offerings = append(get(rec.code).offerings, rec)
		}
	}

	codes := maps.Keys(byCode)
	slices.SortFunc(codes, compareCodes)
	ret := make([]api.Course, 0, len(codes))
	for _, code := range codes {
		d := byCode[code]
		if len(d.offerings) == 0 {
			continue
		}
		aliases := maps.Keys(d.aliases)
		slices.SortFunc(aliases, compareCodes)
		ret = append(ret, assemble(code, d.offerings, aliases))
	}
	return ret
}

// assemble merges every term's records for one course, newest term first.
func assemble(code api.CourseCode, offerings []record, aliases []api.CourseCode) api.Course {
	slices.SortStableFunc(offerings, func(a, b record) int {
		return strings.Compare(b.srcdb, a.srcdb)
	})
	latest := offerings[0]
	var prerequisites *api.PrerequisiteTree
	for _, offering := range offerings {
		if offering.quals.prerequisites != nil {
			prerequisites = offering.quals.prerequisites
			break
		}
	}
	taught := make([]api.Offering, 0, len(offerings))
	for _, offering := range offerings {
		taught = append(taught, api.Offering{
			Date:         offering.srcdb,
			Section:      offering.section,
			Instructors:  offering.instructors,
			Enrollment:   offering.enrollment,
			Demographics: offering.demographics,
		})
	}
	return api.Course{
		Code:          code,
		Title:         latest.title,
		Description:   latest.description,
		Prerequisites: prerequisites,
		Semesters:     latest.quals.semesters,
		Restricted:    latest.restricted,
		Aliases:       aliases,
		Offerings:     taught,
	}
}

func compareCodes(a, b api.CourseCode) int {
	if c := strings.Compare(a.Subject, b.Subject); c != 0 {
		return c
	}
	return strings.Compare(a.Number, b.Number)
}
