// Package calc holds the commands that run the Bayesian update.
package calc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/report"
	"github.com/myrjola/bayescalc/internal/scenarios"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{ //nolint:gochecknoglobals // cobra convention
	ID:    "calc",
	Title: "Calculation",
}

type loggerKey struct{}

// WithLogger stores the logger the commands log with.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// formatAliases maps the CLI format names to report formats.
var formatAliases = map[string]report.Format{ //nolint:gochecknoglobals // constant lookup table
	"ascii":    report.FormatText,
	"text":     report.FormatText,
	"markdown": report.FormatMarkdown,
	"csv":      report.FormatCSV,
	"html":     report.FormatHTML,
	"pdf":      report.FormatPDF,
}

func loadScenario(templateName, csvPath string) (models.Scenario, string, []scenarios.Record, error) {
	switch {
	case templateName != "" && csvPath != "":
		return models.Scenario{}, "", nil, errors.New("use either --template or --csv, not both")
	case templateName != "":
		s, err := scenarios.LoadTemplate(templateName)
		if err != nil {
			return models.Scenario{}, "", nil, err //nolint:wrapcheck // already annotated
		}
		return s, templateName, nil, nil
	case csvPath != "":
		f, err := os.Open(csvPath)
		if err != nil {
			return models.Scenario{}, "", nil, errors.Wrap(err, "open scenario csv", slog.String("path", csvPath))
		}
		defer func() {
			_ = f.Close()
		}()
		s, skipped, err := scenarios.ReadCSV(f)
		if err != nil {
			return models.Scenario{}, "", nil, errors.Wrap(err, "read scenario csv", slog.String("path", csvPath))
		}
		return s, "", skipped, nil
	default:
		return models.Scenario{}, "", nil, errors.New("one of --template or --csv is required")
	}
}

// NewUpdate creates the update command.
func NewUpdate() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		GroupID: Group.ID,
		Short:   "Run a scenario and print the report",
		Long: `Runs the evidence of a built-in template or a scenario CSV through the sequential Bayesian update and
writes the report as an ascii table, Markdown, CSV, HTML or PDF.`,
		Args: cobra.NoArgs,
		RunE: runUpdate,
	}
	cmd.Flags().String("template", "", "built-in template name, see the templates command")
	cmd.Flags().String("csv", "", "path to a scenario CSV file")
	cmd.Flags().Float64("prior", models.DefaultPrior, "prior probability of guilt, overrides the scenario's prior")
	cmd.Flags().String("format", "ascii", "report format: ascii, markdown, csv, html or pdf")
	cmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().String("title", "", "report title, defaults to the template name")
	return cmd
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	templateName, _ := flags.GetString("template")
	csvPath, _ := flags.GetString("csv")
	formatName, _ := flags.GetString("format")
	outputPath, _ := flags.GetString("output")
	title, _ := flags.GetString("title")

	format, ok := formatAliases[formatName]
	if !ok {
		return errors.Wrap(report.ErrUnknownFormat, "parse --format", slog.String("format", formatName))
	}
	renderer, err := report.ForFormat(string(format))
	if err != nil {
		return err //nolint:wrapcheck // already annotated
	}

	s, name, skipped, err := loadScenario(templateName, csvPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := loggerFrom(ctx)
	for _, record := range skipped {
		logger.LogAttrs(ctx, slog.LevelWarn, "skipped record with unknown type",
			slog.String("type", record.Type), slog.String("desc", record.Description))
	}
	if flags.Changed("prior") {
		prior, _ := flags.GetFloat64("prior")
		s = models.NewScenario(prior, s.Evidence, s.CounterEvidence)
	}
	if title == "" {
		title = name
	}

	result := bayes.NewEngine(logger).Update(ctx, s)
	rep := report.New(title, result)

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, createErr := os.Create(outputPath)
		if createErr != nil {
			return errors.Wrap(createErr, "create output file", slog.String("path", outputPath))
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}
	if err = renderer.Render(ctx, out, rep); err != nil {
		return errors.Wrap(err, "render report", slog.String("format", formatName))
	}
	return nil
}

// NewInterpret creates the command mapping a posterior percentage to its verbal conclusion.
func NewInterpret() *cobra.Command {
	return &cobra.Command{
		Use:     "interpret PERCENT",
		GroupID: Group.ID,
		Short:   "Interpret a posterior probability given in percent",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.Wrap(err, "parse percent", slog.String("percent", args[0]))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), bayes.Interpret(percent))
			return err //nolint:wrapcheck // write error
		},
	}
}
