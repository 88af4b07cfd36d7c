package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/EtomicBomb/cab/pkg/api/cab"
	"github.com/EtomicBomb/cab/pkg/fetch"
	"github.com/EtomicBomb/cab/pkg/logic"
	"github.com/EtomicBomb/cab/pkg/process"
)

type MinimizeOpts struct {
	out    string
	verify bool
}

var minimizeopts = &MinimizeOpts{}

func NewMinimizeCmd() *cobra.Command {
	minimizeCmd := &cobra.Command{
		Use:   "minimize",
		Short: "Aggregate the cached records and minimize every prerequisite formula",
		Long: `Aggregate the cached records into courses, normalize their prerequisite
trees, reduce every formula to a minimal equivalent form, and write the
result as json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := fetch.LoadConfig(rootopts.configFile)
			if err != nil {
				return err
			}
			courses, err := loadCourses(config)
			if err != nil {
				return err
			}
			log.Infof("aggregated %d courses", len(courses))
			if err := normalizeCourses(config, courses); err != nil {
				return err
			}

			db, symbols := buildDatabase(courses)
			var before *logic.Database
			if minimizeopts.verify {
				before = db.Clone()
			}

			report := logic.Minimize(db)
			log.Infof("minimized in %d iterations: removed %d clauses and %d clause members",
				report.Iterations, report.RemovedClauses, report.RemovedSymbols)
			if !report.Converged() {
				log.Warnf("%d entries were still shrinking at the iteration cap", len(report.Unsettled))
			}
			failed := maps.Keys(report.Failed)
			slices.Sort(failed)
			for _, name := range failed {
				log.Warnf("left %s untouched: %v", name, report.Failed[name])
			}

			if minimizeopts.verify {
				if err := verify(before, db); err != nil {
					return err
				}
				log.Infof("verified %d entries against the pre-minimization database", db.Len())
			}

			for i := range courses {
				s, inserted := symbols[i]
				if !inserted {
					continue
				}
				if _, found := report.Failed[courses[i].Code.String()]; found {
					continue
				}
				f, _ := db.Formula(s)
				tree, err := logic.ToTree(f, db.Table())
				if err != nil {
					return fmt.Errorf("failed to rebuild prerequisites of %s: %v", courses[i].Code, err)
				}
				courses[i].Prerequisites = tree
			}
			return write(minimizeopts.out, courses)
		},
	}
	minimizeCmd.Flags().StringVarP(&minimizeopts.out, "out", "o", "courses.json", "output file, - for stdout")
	minimizeCmd.Flags().BoolVar(&minimizeopts.verify, "verify", false, "prove every minimized formula equivalent to its original with a SAT solver")
	return minimizeCmd
}

// buildDatabase inserts every course that states a prerequisite, keyed back
// to the course index. Courses without one are not database entries.
func buildDatabase(courses []api.Course) (*logic.Database, map[int]logic.Symbol) {
	db := logic.NewDatabase(logic.NewSymbolTable())
	symbols := map[int]logic.Symbol{}
	for i := range courses {
		if courses[i].Prerequisites == nil {
			continue
		}
		symbols[i] = db.Insert(courses[i].Code, courses[i].Prerequisites)
	}
	return db, symbols
}

// loadCourses aggregates every cached term named by the config, or every
// term present in the cache when the config names none.
func loadCourses(config *cab.Config) ([]api.Course, error) {
	helper := &fetch.CacheHelper{CacheDir: config.CacheDir}
	terms := config.Terms
	if len(terms) == 0 {
		var err error
		terms, err = helper.Terms()
		if err != nil {
			return nil, err
		}
	}
	var raws []process.Raw
	for _, term := range terms {
		reader, err := helper.OpenTerm(term)
		if err != nil {
			return nil, err
		}
		records, err := process.DecodeRecords(reader)
		reader.Close()
		if err != nil {
			return nil, err
		}
		log.Debugf("term %s holds %d records", term, len(records))
		raws = append(raws, records...)
	}
	return process.Courses(raws), nil
}

func normalizeCourses(config *cab.Config, courses []api.Course) error {
	var groups []string
	if config.Equivalents != "" {
		data, err := os.ReadFile(config.Equivalents)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				groups = append(groups, line)
			}
		}
	}
	normalizer, err := process.NewNormalizer(groups)
	if err != nil {
		return err
	}
	for i := range courses {
		courses[i].Prerequisites = normalizer.Normalize(courses[i].Prerequisites)
	}
	return nil
}

func verify(before, after *logic.Database) error {
	verifier := logic.NewVerifier(before)
	for _, s := range before.Symbols() {
		original, _ := before.Formula(s)
		minimized, _ := after.Formula(s)
		if verifier.Equivalent(original, minimized) {
			continue
		}
		q, _ := before.Table().Resolve(s)
		return fmt.Errorf("minimization changed the meaning of %s: %v became %v", q, original, minimized)
	}
	return nil
}

func write(out string, courses []api.Course) error {
	data, err := json.MarshalIndent(courses, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if out == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0660)
}
