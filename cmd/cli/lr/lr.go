// Package lr converts likelihood ratios to probability pairs.
package lr

import (
	"log/slog"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/likelihood"
	"github.com/myrjola/bayescalc/internal/probability"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{ //nolint:gochecknoglobals // cobra convention
	ID:    "lr",
	Title: "Likelihood ratios",
}

// NewLR creates the lr command with its convert and scale subcommands.
func NewLR() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lr",
		GroupID: Group.ID,
		Short:   "Convert likelihood ratios",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "convert LR",
			Short: "Convert a likelihood ratio to P(E|guilty) and P(E|innocent)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return errors.Wrap(err, "parse likelihood ratio", slog.String("lr", args[0]))
				}
				return printConversion(cmd, likelihood.ClampRatio(v))
			},
		},
		&cobra.Command{
			Use:   "scale S",
			Short: "Convert a signed log10 strength between -6 and 6 to a likelihood ratio",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return errors.Wrap(err, "parse log scale", slog.String("scale", args[0]))
				}
				return printConversion(cmd, likelihood.FromLogScale(s))
			},
		},
	)
	return cmd
}

func printConversion(cmd *cobra.Command, lr float64) error {
	pGuilty, pInnocent := likelihood.ToProbabilityPair(lr)
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleLight)
	tw.AppendRows([]table.Row{
		{"Likelihood ratio", probability.FormatLikelihoodRatio(lr)},
		{"Log scale", strconv.FormatFloat(likelihood.LogScale(lr), 'f', 4, 64)}, //nolint:mnd // decimals
		{"P(E|guilty)", probability.FormatPercent(pGuilty)},
		{"P(E|innocent)", probability.FormatPercent(pInnocent)},
		{"Strength", string(likelihood.Categorize(lr))},
	})
	tw.Render()
	return nil
}
