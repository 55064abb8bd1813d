package doctor

import (
	"context"
	"fmt"
)

// Counter reports how many rows the history database holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// DatabaseCheck verifies the local notification history is readable.
type DatabaseCheck struct {
	path  string
	store Counter
}

// NewDatabaseCheck creates a database check for the store at path.
func NewDatabaseCheck(path string, store Counter) *DatabaseCheck {
	return &DatabaseCheck{path: path, store: store}
}

func (c *DatabaseCheck) Name() string {
	return "Database"
}

func (c *DatabaseCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.store == nil {
		result.Items = append(result.Items, warn("history", "database not opened"))
		return result
	}

	n, err := c.store.Count(ctx)
	if err != nil {
		result.Items = append(result.Items, fail("history", err.Error()))
		return result
	}

	result.Items = append(result.Items,
		pass("path", c.path),
		pass("history", fmt.Sprintf("%d notification(s)", n)),
	)
	return result
}
