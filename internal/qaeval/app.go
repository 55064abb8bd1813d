// Package qaeval holds the dependencies shared by every command and the TUI.
package qaeval

import (
	"github.com/colonyops/qaeval/internal/api"
	"github.com/colonyops/qaeval/internal/core/config"
	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/data/db"
)

// App is the central entry point for qaeval operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	Client  *api.Client
	DB      *db.DB
	History notify.Store
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, client *api.Client, database *db.DB, history notify.Store) *App {
	return &App{
		Config:  cfg,
		Client:  client,
		DB:      database,
		History: history,
	}
}
