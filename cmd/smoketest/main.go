package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/e2etest"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/logging"
)

const smokeTemplate = "Site A"

// TestTemplate loads a built-in template through the form and checks that the results render.
func TestTemplate(ctx context.Context, client *e2etest.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}
	doc, err := client.SubmitForm(ctx, "/", "/scenario/template", url.Values{"template": {smokeTemplate}})
	if err != nil {
		return errors.Wrap(err, "load template", slog.String("template", smokeTemplate))
	}
	if rows := doc.Find("#steps tbody tr").Length(); rows == 0 {
		return errors.New("results table is empty")
	}
	conclusion := bayes.Conclusion(strings.TrimSpace(doc.Find("#conclusion").Text()))
	if conclusion != bayes.BeyondReasonableDoubt {
		return errors.New("unexpected conclusion", slog.String("conclusion", string(conclusion)))
	}
	if posterior := doc.Find("#posterior").Text(); !strings.HasSuffix(posterior, "%") {
		return errors.New("unexpected posterior", slog.String("posterior", posterior))
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		baseURL  = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	if strings.HasPrefix(hostname, "localhost") || strings.HasPrefix(hostname, "127.0.0.1") {
		baseURL = "http://" + hostname
	}
	ctx = logging.WithAttrs(ctx, slog.String("url", baseURL))

	if client, err = e2etest.NewClient(baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestTemplate(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing template", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
