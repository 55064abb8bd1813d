package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/qaeval/internal/api"
	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/printer"
	"github.com/colonyops/qaeval/internal/qaeval"
)

const uploadWarning = "Uploading replaces ALL questions and categories on the server."

type UploadCmd struct {
	flags *Flags
	app   *qaeval.App

	yes bool

	// interactive reports whether prompts may be shown.
	interactive func() bool
}

// NewUploadCmd creates a new upload command
func NewUploadCmd(flags *Flags, app *qaeval.App) *UploadCmd {
	return &UploadCmd{
		flags: flags,
		app:   app,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Register adds the upload command to the application
func (cmd *UploadCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "upload",
		Usage:     "Upload a spreadsheet of questions",
		UsageText: "qaeval upload [--yes] [file]",
		Description: `Uploads a spreadsheet to the evaluation service. The upload replaces every
question and category on the server, so it asks for confirmation unless --yes
is given. Without a file argument the path is prompted for.

The file must match one of the upload.patterns globs from the config.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *UploadCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	interactive := cmd.interactive()

	path := strings.TrimSpace(c.Args().First())
	if path == "" {
		if !interactive {
			return errors.New("no file given")
		}
		if err := cmd.promptPath(&path); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if err := cmd.checkFile(path); err != nil {
		return err
	}

	if !cmd.yes {
		if !interactive {
			return errors.New("refusing to replace all questions without --yes in a non-interactive session")
		}
		ok, err := cmd.confirm(path)
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("form: %w", err)
		}
		if !ok {
			p.Infof("Upload cancelled")
			return nil
		}
	}

	log.Info().Str("path", path).Msg("uploading spreadsheet")

	res, err := cmd.app.Client.UploadFile(ctx, path)
	if err != nil {
		var uerr *api.UploadError
		if errors.As(err, &uerr) {
			cmd.record(ctx, notify.LevelError, fmt.Sprintf("Upload of %s rejected: %s", path, uerr.Message))
			p.Errorf("Upload rejected: %s", uerr.Message)
			for _, d := range uerr.Details()[1:] {
				p.Printf("  %s", d)
			}
			return cli.Exit("", 1)
		}
		cmd.record(ctx, notify.LevelError, fmt.Sprintf("Upload of %s failed: %v", path, err))
		return fmt.Errorf("upload: %w", err)
	}

	cmd.record(ctx, notify.LevelInfo, fmt.Sprintf("%s: %d questions processed", res.Message, res.TotalQuestionsProcessed))
	p.Successf("%s", res.Message)
	p.Printf("  %d questions processed", res.TotalQuestionsProcessed)
	return nil
}

func (cmd *UploadCmd) checkFile(path string) error {
	if !cmd.app.Config.AllowsUpload(path) {
		return fmt.Errorf("%s does not match any upload pattern (%s)", path, strings.Join(cmd.app.Config.Upload.Patterns, ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat upload file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func (cmd *UploadCmd) promptPath(path *string) error {
	return huh.NewInput().
		Title("Spreadsheet").
		Description("Path to the file to upload").
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("path is required")
			}
			return nil
		}).
		Value(path).
		Run()
}

func (cmd *UploadCmd) confirm(path string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Upload " + path + "?").
		Description(uploadWarning).
		Affirmative("Upload").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// record keeps the outcome in the notification history. Failures are
// logged only, the upload result is already decided.
func (cmd *UploadCmd) record(ctx context.Context, level notify.Level, msg string) {
	if cmd.app.History == nil {
		return
	}
	if _, err := cmd.app.History.Save(ctx, notify.Notification{Level: level, Message: msg}); err != nil {
		log.Warn().Err(err).Msg("failed to record upload notification")
	}
}
