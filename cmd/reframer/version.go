package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "reframer %s\n", Version)
			fmt.Fprintf(a.out, "  Commit: %s\n", CommitSHA)
			fmt.Fprintf(a.out, "  Built:  %s\n", BuildDate)
		},
	}
}
