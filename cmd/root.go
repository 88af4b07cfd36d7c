package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type RootOpts struct {
	configFile string
	verbose    bool
}

var rootopts = &RootOpts{}

var rootCmd = &cobra.Command{
	Use:   "cab",
	Short: "cab scrapes the Courses@Brown catalog and minimizes prerequisite formulas",
	Long: `The tool downloads raw course records, aggregates them into courses,
reduces every prerequisite formula to a minimal equivalent form, and can
render the whole catalog as a prerequisite graph`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootopts.verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringVarP(&rootopts.configFile, "config", "c", "", "scrape configuration file")
	rootCmd.PersistentFlags().BoolVarP(&rootopts.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(NewFetchCmd())
	rootCmd.AddCommand(NewMinimizeCmd())
	rootCmd.AddCommand(NewGraphCmd())
	rootCmd.AddCommand(NewParseCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
