package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/goalgraph/internal/graph"
)

func SchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := graph.Validate()
			if err != nil {
				return err
			}

			sdl, err := graph.FormatSDL()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), sdl)
			return nil
		},
	}
}
