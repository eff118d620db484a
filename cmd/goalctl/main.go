package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/goalgraph/cmd/goalctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "goalctl",
		Short:        "Operator tools for goalgraph",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.UserCmd())
	rootCmd.AddCommand(cmd.TokenCmd())
	rootCmd.AddCommand(cmd.SchemaCmd())
	rootCmd.AddCommand(cmd.QueryCmd())
	rootCmd.AddCommand(cmd.ExportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
