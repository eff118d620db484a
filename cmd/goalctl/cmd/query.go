package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/templui/goalgraph/internal/ctxkeys"
)

func QueryCmd() *cobra.Command {
	var (
		rawJSON   bool
		variables string
		operation string
		asUser    string
	)

	cmd := &cobra.Command{
		Use:   "query [query]",
		Short: "Execute a GraphQL query or mutation in-process",
		Long: `Execute a GraphQL query or mutation against the configured database.

Examples:
  goalctl query '{ goals { totalCount edges { node { name progress } } } }'
  goalctl query --as <user-id> 'mutation { createGoal(input: {goal: {name: "Run"}}) { goal { id } } }'
  goalctl query -v '{"f": {"nameContains": "run"}}' 'query($f: GoalFilter) { goals(filter: $f) { totalCount } }'
  cat query.graphql | goalctl query`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := queryText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var vars map[string]interface{}
			if variables != "" {
				err := json.Unmarshal([]byte(variables), &vars)
				if err != nil {
					return fmt.Errorf("invalid variables JSON: %w", err)
				}
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			if asUser != "" {
				user, err := a.UserService.ByID(ctx, asUser)
				if err != nil {
					return err
				}
				ctx = ctxkeys.WithUser(ctx, user)
			}

			resp := a.Schema.Exec(ctx, query, operation, vars)
			out, err := json.Marshal(resp)
			if err != nil {
				return fmt.Errorf("failed to encode response: %w", err)
			}

			if rawJSON {
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(pretty.Color(pretty.Pretty(out), nil)))
			}

			if len(resp.Errors) > 0 {
				return fmt.Errorf("query returned %d error(s)", len(resp.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "print compact JSON without colors")
	cmd.Flags().StringVarP(&variables, "variables", "v", "", "variables as a JSON object")
	cmd.Flags().StringVarP(&operation, "operation", "o", "", "operation name")
	cmd.Flags().StringVar(&asUser, "as", "", "run as this owner id")
	return cmd
}

// queryText takes the query from args, or from stdin when piped.
func queryText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	if f, ok := stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("checking stdin: %w", err)
		}
		if stat.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
	}
	return query, nil
}
