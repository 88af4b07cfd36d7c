package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/EtomicBomb/cab/pkg/parse"
)

func NewParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse SENTENCE",
		Short: "Parse one prerequisite sentence and print the tree as json",
		Long:  `Parse one prerequisite sentence and print the tree as json`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := parse.Prerequisites(args[0])
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(tree)
		},
	}
}
