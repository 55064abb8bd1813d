package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/core/question"
	"github.com/colonyops/qaeval/internal/printer"
	"github.com/colonyops/qaeval/internal/qaeval"
	"github.com/colonyops/qaeval/pkg/iojson"
)

type ExportCmd struct {
	flags *Flags
	app   *qaeval.App

	filter string
	format string
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *qaeval.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export questions with their scores and categories",
		UsageText: "qaeval export [--filter F] [--format csv|json] [-o file]",
		Description: `Walks every page for the filter, fetches the full text of each question,
and writes id, question, answer, topic, score and category names.

Output goes to stdout unless -o is given.`,
		Flags: []cli.Flag{
			filterFlag(&cmd.filter),
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (csv, json)",
				Value:       "csv",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

// exportRow is one exported question.
type exportRow struct {
	ID         int      `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Topic      string   `json:"topic"`
	Score      string   `json:"score"`
	Categories []string `json:"categories"`
}

var exportHeader = []string{"id", "question", "answer", "topic", "score", "categories"}

func (r exportRow) record() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Question,
		r.Answer,
		r.Topic,
		r.Score,
		strings.Join(r.Categories, "; "),
	}
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := question.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}
	if cmd.format != "csv" && cmd.format != "json" {
		return fmt.Errorf("invalid format %q: must be csv or json", cmd.format)
	}

	rows, err := cmd.collect(ctx, filter)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if cmd.format == "json" {
		err = iojson.WriteWith(out, os.Stderr, rows)
	} else {
		err = writeCSV(out, rows)
	}
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	if cmd.output != "" {
		printer.Ctx(ctx).Successf("Exported %d question(s) to %s", len(rows), cmd.output)
	}
	return nil
}

// collect walks the listing and enriches each row with the full record.
// Category names come from the directory since listing rows may only carry ids.
func (cmd *ExportCmd) collect(ctx context.Context, filter question.Filter) ([]exportRow, error) {
	cats, err := cmd.app.Client.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[int]string, len(cats))
	for _, cat := range cats {
		names[cat.ID] = cat.Name
	}

	rows := []exportRow{}
	err = cmd.app.Client.Walk(ctx, filter, func(q question.Question) error {
		d, err := cmd.app.Client.GetQuestion(ctx, q.ID)
		if err != nil {
			return fmt.Errorf("get question %d: %w", q.ID, err)
		}

		row := exportRow{
			ID:         q.ID,
			Question:   d.Question,
			Answer:     d.Answer,
			Topic:      d.Topic,
			Score:      q.Score.String(),
			Categories: make([]string, 0, len(q.Categories)),
		}
		for _, cat := range q.Categories {
			name := names[cat.ID]
			if name == "" {
				name = cat.Name
			}
			if name == "" {
				name = strconv.Itoa(cat.ID)
			}
			row.Categories = append(row.Categories, name)
		}

		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk questions: %w", err)
	}

	log.Debug().Int("rows", len(rows)).Str("filter", string(filter)).Msg("export collected")
	return rows, nil
}

func writeCSV(w io.Writer, rows []exportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
