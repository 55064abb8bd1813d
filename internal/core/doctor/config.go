package doctor

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/qaeval/internal/core/config"
)

// ConfigCheck reports the configuration file and every field-level
// validation problem.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a config check for cfg loaded from path.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.path); {
	case c.path == "":
	case os.IsNotExist(err):
		result.Items = append(result.Items, warn("config file", c.path+" not found, using defaults"))
	case err != nil:
		result.Items = append(result.Items, fail("config file", err.Error()))
	default:
		result.Items = append(result.Items, pass("config file", c.path))
	}

	err := c.cfg.ValidateDeep(c.path)
	if err == nil {
		result.Items = append(result.Items, pass("fields", "all values valid"))
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, fail("fields", err.Error()))
		return result
	}

	for _, fe := range fieldErrs {
		result.Items = append(result.Items, fail(fe.Field, fe.Err.Error()))
	}
	return result
}
