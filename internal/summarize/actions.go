package summarize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/sumz/internal/common"
	"github.com/dtnitsch/sumz/models"
)

const failureHeading = "Well, that wasn't supposed to happen..."

// Result is one submission's outcome as printed by the summarize command.
type Result struct {
	URL     string             `json:"url" yaml:"url"`
	Summary string             `json:"summary,omitempty" yaml:"summary,omitempty"`
	Error   *models.FetchError `json:"error,omitempty" yaml:"error,omitempty"`
}

// SummarizeAction submits each URL in turn and prints the summaries.
func SummarizeAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: at least one URL is required. Usage: sumz summarize URL [URL...]", common.ExitUserError)
	}

	urls, invalid := common.SanitizeAndValidateURLs(c.Args().Slice())
	if len(invalid) > 0 {
		return cli.Exit(fmt.Sprintf("Error: invalid URL(s): %s", strings.Join(invalid, ", ")), common.ExitUserError)
	}

	format, err := common.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), common.ExitUserError)
	}

	env, err := common.Open(c, common.EnvOptions{NeedSummarizer: true})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitRuntimeError)
	}
	defer env.Close()

	results := make([]Result, 0, len(urls))
	failed := 0
	for _, u := range urls {
		result := Result{URL: u}
		err := env.Controller.Submit(c.Context, u)

		var fe *models.FetchError
		switch {
		case err == nil:
			result.Summary = env.Controller.Snapshot().Draft.Summary
		case errors.As(err, &fe):
			result.Error = fe
			failed++
		default:
			// Saved-history failures still produce a summary in the draft.
			env.Logger.Error("submission incomplete", "url", u, "error", err)
			result.Summary = env.Controller.Snapshot().Draft.Summary
			failed++
		}
		results = append(results, result)
	}

	var out any = results
	if len(results) == 1 {
		out = results[0]
	}
	if err := common.Render(os.Stdout, format, out, func(w io.Writer) error {
		return printText(w, os.Stderr, results)
	}); err != nil {
		return cli.Exit(err.Error(), common.ExitRuntimeError)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d summaries failed", failed, len(results)), common.ExitRuntimeError)
	}
	return nil
}

// printText writes summaries to w and failures, under failureHeading, to errW.
func printText(w, errW io.Writer, results []Result) error {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s\n%s\n", r.URL, strings.Repeat("-", min(len(r.URL), 60)))
		}
		if r.Error != nil {
			fmt.Fprintf(errW, "%s\n%s\n", failureHeading, r.Error.Message())
			continue
		}
		if _, err := fmt.Fprintln(w, r.Summary); err != nil {
			return err
		}
	}
	return nil
}
