package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/qaeval/internal/core/question"
)

// Server is the part of the API client the server check probes.
type Server interface {
	BaseURL() string
	Health(ctx context.Context) error
	ListCategories(ctx context.Context) ([]question.Category, error)
}

// ServerCheck verifies the evaluation service answers and serves the
// category directory.
type ServerCheck struct {
	server Server
}

// NewServerCheck creates a server check.
func NewServerCheck(server Server) *ServerCheck {
	return &ServerCheck{server: server}
}

func (c *ServerCheck) Name() string {
	return "Server"
}

func (c *ServerCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	start := time.Now()
	if err := c.server.Health(ctx); err != nil {
		result.Items = append(result.Items, fail("health", err.Error()))
		return result
	}
	result.Items = append(result.Items, pass("health",
		fmt.Sprintf("%s (%s)", c.server.BaseURL(), time.Since(start).Round(time.Millisecond))))

	cats, err := c.server.ListCategories(ctx)
	switch {
	case err != nil:
		result.Items = append(result.Items, fail("categories", err.Error()))
	case len(cats) == 0:
		result.Items = append(result.Items, warn("categories", "server returned no categories"))
	default:
		result.Items = append(result.Items, pass("categories", fmt.Sprintf("%d available", len(cats))))
	}

	return result
}
