package cmd

import (
	"fmt"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the clockface version",
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		fmt.Fprintf(c.OutOrStdout(), "clockface %s (built %s)\n", displayVersion(Version), BuildTime)
	},
}

func displayVersion(v string) string {
	if canonical, ok := config.CanonicalVersion(v); ok {
		return canonical
	}
	return v
}
