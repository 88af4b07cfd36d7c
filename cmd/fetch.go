package main

import (
	"github.com/spf13/cobra"

	"github.com/EtomicBomb/cab/pkg/fetch"
)

func NewFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download raw course records into the cache",
		Long:  `Download raw course records into the cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := fetch.LoadConfig(rootopts.configFile)
			if err != nil {
				return err
			}
			return fetch.NewRemoteCourseFetcher(config).Fetch()
		},
	}
}
