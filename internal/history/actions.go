package history

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/sumz/internal/common"
	"github.com/dtnitsch/sumz/models"
)

// previewLength bounds the summary preview in the text listing.
const previewLength = 80

// HistoryAction lists stored articles, most recent first.
func HistoryAction(c *cli.Context) error {
	format, err := common.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), common.ExitUserError)
	}
	limit := c.Int("limit")
	if limit < 0 {
		return cli.Exit("Error: --limit must not be negative", common.ExitUserError)
	}

	env, err := common.Open(c, common.EnvOptions{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitRuntimeError)
	}
	defer env.Close()

	history := env.Controller.Snapshot().History
	total := len(history)
	if limit > 0 && limit < total {
		history = history[:limit]
	}

	return common.Render(os.Stdout, format, history, func(w io.Writer) error {
		return printHistory(w, history, total)
	})
}

// ShowAction prints history item N (1-based) in full.
func ShowAction(c *cli.Context) error {
	format, err := common.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), common.ExitUserError)
	}
	index, err := parseIndex(c)
	if err != nil {
		return err
	}

	env, err := common.Open(c, common.EnvOptions{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitRuntimeError)
	}
	defer env.Close()

	a, err := env.Controller.SelectHistoryIndex(index - 1)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitUserError)
	}

	return common.Render(os.Stdout, format, a, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s\n\n%s\n", a.URL, a.Summary)
		return err
	})
}

// CopyAction copies the URL of history item N (1-based) to the clipboard.
func CopyAction(c *cli.Context) error {
	index, err := parseIndex(c)
	if err != nil {
		return err
	}

	env, err := common.Open(c, common.EnvOptions{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitRuntimeError)
	}
	defer env.Close()

	history := env.Controller.Snapshot().History
	if index > len(history) {
		return cli.Exit(fmt.Sprintf("Error: no history item %d (history has %d)", index, len(history)), common.ExitUserError)
	}
	url := history[index-1].URL
	if err := env.Controller.Copy(url); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), common.ExitRuntimeError)
	}
	fmt.Printf("✓ copied %s\n", url)
	return nil
}

func parseIndex(c *cli.Context) (int, error) {
	if c.NArg() != 1 {
		return 0, cli.Exit("Error: exactly one history index is required (see 'sumz history')", common.ExitUserError)
	}
	index, err := strconv.Atoi(c.Args().First())
	if err != nil || index < 1 {
		return 0, cli.Exit(fmt.Sprintf("Error: invalid history index: %s", c.Args().First()), common.ExitUserError)
	}
	return index, nil
}

func printHistory(w io.Writer, history models.History, total int) error {
	if total == 0 {
		_, err := fmt.Fprintln(w, "No articles yet. Run 'sumz summarize URL' first")
		return err
	}
	for i, a := range history {
		fmt.Fprintf(w, "%3d. %s\n", i+1, a.URL)
		fmt.Fprintf(w, "     %s\n", preview(a.Summary))
	}
	_, err := fmt.Fprintf(w, "\nShowing %d of %d articles\n", len(history), total)
	return err
}

func preview(summary string) string {
	s := strings.Join(strings.Fields(summary), " ")
	if r := []rune(s); len(r) > previewLength {
		return string(r[:previewLength-3]) + "..."
	}
	return s
}
