package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/printer"
	"github.com/colonyops/qaeval/internal/qaeval"
	"github.com/colonyops/qaeval/pkg/iojson"
)

type CategoriesCmd struct {
	flags      *Flags
	app        *qaeval.App
	jsonOutput bool
}

// NewCategoriesCmd creates a new categories command
func NewCategoriesCmd(flags *Flags, app *qaeval.App) *CategoriesCmd {
	return &CategoriesCmd{flags: flags, app: app}
}

// Register adds the categories command to the application
func (cmd *CategoriesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "categories",
		Usage:     "List the category directory",
		UsageText: "qaeval categories [--json]",
		Flags: []cli.Flag{
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

func (cmd *CategoriesCmd) run(ctx context.Context, c *cli.Command) error {
	cats, err := cmd.app.Client.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, cat := range cats {
			if err := iojson.WriteLine(out, cat); err != nil {
				return fmt.Errorf("encode category: %w", err)
			}
		}
		return nil
	}

	if len(cats) == 0 {
		printer.Ctx(ctx).Infof("No categories defined")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME")
	for _, cat := range cats {
		_, _ = fmt.Fprintf(w, "%d\t%s\n", cat.ID, cat.Name)
	}
	return w.Flush()
}
