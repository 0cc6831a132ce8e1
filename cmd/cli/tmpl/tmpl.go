// Package tmpl lists and exports the built-in scenario templates.
package tmpl

import (
	"fmt"

	"github.com/myrjola/bayescalc/internal/scenarios"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{ //nolint:gochecknoglobals // cobra convention
	ID:    "templates",
	Title: "Scenario templates",
}

// NewTemplates creates the templates command. Without a subcommand it lists the template names.
func NewTemplates() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		GroupID: Group.ID,
		Short:   "List built-in scenario templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range scenarios.ListTemplates() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err //nolint:wrapcheck // write error
				}
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export NAME",
		Short: "Write a template as scenario CSV",
		Long:  "Writes a template in the scenario CSV format that the update command and the web calculator read.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenarios.LoadTemplate(args[0])
			if err != nil {
				return err //nolint:wrapcheck // already annotated
			}
			return scenarios.WriteCSV(cmd.OutOrStdout(), s) //nolint:wrapcheck // already annotated
		},
	})
	return cmd
}
