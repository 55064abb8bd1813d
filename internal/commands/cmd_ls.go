package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/core/question"
	"github.com/colonyops/qaeval/internal/printer"
	"github.com/colonyops/qaeval/internal/qaeval"
	"github.com/colonyops/qaeval/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *qaeval.App

	// flags
	filter     string
	page       int
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *qaeval.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List one page of questions",
		UsageText: "qaeval ls [--filter all|evaluated|unevaluated] [--page N] [--json]",
		Description: `Displays one page of questions with their score and categories.

Use --json to emit one JSON object per question, followed by nothing else,
so the output can be piped into jq.`,
		Flags: []cli.Flag{
			filterFlag(&cmd.filter),
			&cli.IntFlag{
				Name:        "page",
				Aliases:     []string{"p"},
				Usage:       "page number, starting at 1",
				Value:       1,
				Destination: &cmd.page,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// questionInfo is the JSON output format for qaeval ls --json.
type questionInfo struct {
	ID         int      `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Score      string   `json:"score"`
	Categories []string `json:"categories"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := question.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}

	page, err := cmd.app.Client.ListQuestions(ctx, cmd.page, filter)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, q := range page.Questions {
			info := questionInfo{
				ID:         q.ID,
				Question:   q.QuestionPreview(),
				Answer:     q.AnswerPreview(),
				Score:      q.Score.String(),
				Categories: categoryNames(q.Categories),
			}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode question: %w", err)
			}
		}
		return nil
	}

	p := printer.Ctx(ctx)
	if len(page.Questions) == 0 {
		p.Infof("No %s questions", filter)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSCORE\tQUESTION\tANSWER\tCATEGORIES")
	for _, q := range page.Questions {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			q.ID, q.Score, q.QuestionPreview(), q.AnswerPreview(), strings.Join(categoryNames(q.Categories), ", "))
	}
	_ = w.Flush()

	p.Printf("")
	p.Printf("page %d of %d (%s)", page.State.CurrentPage, page.State.TotalPages, filter.Label())
	return nil
}
