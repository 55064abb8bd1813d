package commands

import (
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/core/config"
	"github.com/colonyops/qaeval/internal/core/question"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	DataDir      string
	Server       string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

func filterFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "filter",
		Aliases:     []string{"f"},
		Usage:       "question filter (all, evaluated, unevaluated)",
		Value:       string(question.FilterAll),
		Destination: dest,
	}
}

func categoryNames(cats []question.Category) []string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		if c.Name != "" {
			names = append(names, c.Name)
		} else {
			names = append(names, strconv.Itoa(c.ID))
		}
	}
	return names
}
