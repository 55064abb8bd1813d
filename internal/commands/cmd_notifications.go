package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/core/styles"
	"github.com/colonyops/qaeval/internal/printer"
	"github.com/colonyops/qaeval/internal/qaeval"
	"github.com/colonyops/qaeval/pkg/iojson"
)

type NotificationsCmd struct {
	flags *Flags
	app   *qaeval.App

	clear      bool
	jsonOutput bool
}

// NewNotificationsCmd creates a new notifications command
func NewNotificationsCmd(flags *Flags, app *qaeval.App) *NotificationsCmd {
	return &NotificationsCmd{flags: flags, app: app}
}

// Register adds the notifications command to the application
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "notifications",
		Aliases:     []string{"history"},
		Usage:       "Show or clear the notification history",
		UsageText:   "qaeval notifications [--clear] [--json]",
		Description: "Lists every notification raised by the TUI and by uploads, newest first.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "delete all notifications",
				Destination: &cmd.clear,
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

type notificationJSON struct {
	ID         int64     `json:"id"`
	Level      string    `json:"level"`
	Message    string    `json:"message"`
	QuestionID int       `json:"question_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (cmd *NotificationsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.clear {
		n, err := cmd.app.History.Count(ctx)
		if err != nil {
			return fmt.Errorf("count notifications: %w", err)
		}
		if err := cmd.app.History.Clear(ctx); err != nil {
			return fmt.Errorf("clear notifications: %w", err)
		}
		p.Successf("Cleared %d notification(s)", n)
		return nil
	}

	items, err := cmd.app.History.List(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, n := range items {
			err := iojson.WriteLine(out, notificationJSON{
				ID:         n.ID,
				Level:      string(n.Level),
				Message:    n.Message,
				QuestionID: n.QuestionID,
				CreatedAt:  n.CreatedAt,
			})
			if err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return nil
	}

	if len(items) == 0 {
		p.Infof("No notifications")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tLEVEL\tMESSAGE")
	for _, n := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", n.CreatedAt.Local().Format(time.DateTime), levelLabel(n.Level), n.Message)
	}
	return w.Flush()
}

func levelLabel(l notify.Level) string {
	switch l {
	case notify.LevelError:
		return styles.TextErrorStyle.Render(string(l))
	case notify.LevelWarning:
		return styles.TextWarningStyle.Render(string(l))
	default:
		return styles.TextMutedStyle.Render(string(l))
	}
}
