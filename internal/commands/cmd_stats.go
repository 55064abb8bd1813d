package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/api"
	"github.com/colonyops/qaeval/internal/core/question"
	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/qaeval"
	"github.com/colonyops/qaeval/pkg/iojson"
)

type StatsCmd struct {
	flags *Flags
	app   *qaeval.App

	filter     string
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *qaeval.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "stats",
		Usage:       "Summarise evaluation progress",
		UsageText:   "qaeval stats [--filter all|evaluated|unevaluated] [--json]",
		Description: "Walks every page for the filter and counts agree, disagree and unset scores.",
		Flags: []cli.Flag{
			filterFlag(&cmd.filter),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type statsJSON struct {
	Filter string `json:"filter"`
	api.Stats
	PercentEvaluated float64 `json:"percent_evaluated"`
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := question.ParseFilter(cmd.filter)
	if err != nil {
		return err
	}

	var stats api.Stats
	err = cmd.app.Client.Walk(ctx, filter, func(q question.Question) error {
		stats.Add(q)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk questions: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, statsJSON{
			Filter:           string(filter),
			Stats:            stats,
			PercentEvaluated: stats.PercentEvaluated(),
		})
	}

	_, _ = fmt.Fprintln(out, styles.TextPrimaryBoldStyle.Render(filter.Label()+" questions"))
	_, _ = fmt.Fprintf(out, "  total     %d\n", stats.Total)
	_, _ = fmt.Fprintf(out, "  %s agree    %d\n", styles.ScoreAgreeStyle.Render(styles.IconAgree), stats.Agree)
	_, _ = fmt.Fprintf(out, "  %s disagree %d\n", styles.ScoreDisagreeStyle.Render(styles.IconDisagree), stats.Disagree)
	_, _ = fmt.Fprintf(out, "  %s unset    %d\n", styles.ScoreUnsetStyle.Render(styles.IconUnset), stats.Unset)
	_, _ = fmt.Fprintf(out, "  evaluated %.1f%%\n", stats.PercentEvaluated())
	return nil
}
