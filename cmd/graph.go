package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/EtomicBomb/cab/pkg/fetch"
	"github.com/EtomicBomb/cab/pkg/graph"
	"github.com/EtomicBomb/cab/pkg/subject"
)

type GraphOpts struct {
	in  string
	out string
}

var graphopts = &GraphOpts{}

func NewGraphCmd() *cobra.Command {
	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the minimized catalog as an svg",
		Long:  `Render the minimized catalog as an svg, one cluster per subject, reading the course file written by minimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := fetch.LoadConfig(rootopts.configFile)
			if err != nil {
				return err
			}
			courses, err := readCourses(graphopts.in)
			if err != nil {
				return err
			}
			registry, err := loadRegistry(config.Subjects)
			if err != nil {
				return err
			}
			svg, err := graph.RenderSVG(cmd.Context(), courses, registry)
			if err != nil {
				return err
			}
			return os.WriteFile(graphopts.out, []byte(svg), 0660)
		},
	}
	graphCmd.Flags().StringVarP(&graphopts.in, "in", "i", "courses.json", "minimized course file written by minimize")
	graphCmd.Flags().StringVarP(&graphopts.out, "out", "o", "graph.svg", "output file")
	return graphCmd
}

func readCourses(file string) ([]api.Course, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var courses []api.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("failed to parse course file %s: %v", file, err)
	}
	return courses, nil
}

func loadRegistry(path string) (*subject.Registry, error) {
	if path == "" {
		return subject.NewRegistry(strings.NewReader(""))
	}
	return subject.Load(path)
}
