package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/printer"
	"github.com/colonyops/qaeval/internal/qaeval"
	"github.com/colonyops/qaeval/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	app    *qaeval.App
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags, app *qaeval.App) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags, app: app}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "qaeval config validate [options]",
				Description: "Validates the configuration file, checking the server url, theme, upload globs, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type fieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	problems := cmd.problems()

	if cmd.format == "json" {
		out := struct {
			Valid  bool           `json:"valid"`
			Path   string         `json:"path"`
			Errors []fieldProblem `json:"errors,omitempty"`
		}{
			Valid:  len(problems) == 0,
			Path:   cmd.flags.ConfigPath,
			Errors: problems,
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().Writer, out); err != nil {
			return err
		}
	} else {
		p := printer.Ctx(ctx)
		for _, pr := range problems {
			p.Errorf("%s: %s", pr.Field, pr.Message)
		}
		if len(problems) == 0 {
			p.Successf("Configuration is valid")
		} else {
			p.Printf("")
			p.Errorf("%d error(s) found", len(problems))
		}
	}

	if len(problems) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) problems() []fieldProblem {
	err := cmd.app.Config.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []fieldProblem{{Field: "config", Message: err.Error()}}
	}

	problems := make([]fieldProblem, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fieldProblem{Field: fe.Field, Message: fe.Err.Error()})
	}
	return problems
}
