package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/qaeval/internal/core/config"
	"github.com/colonyops/qaeval/internal/core/question"
)

type fakeServer struct {
	healthErr error
	cats      []question.Category
	catsErr   error
}

func (f fakeServer) BaseURL() string { return "http://eval.test" }
func (f fakeServer) Health(context.Context) error { return f.healthErr }
func (f fakeServer) ListCategories(context.Context) ([]question.Category, error) {
	return f.cats, f.catsErr
}

type fakeCounter struct {
	n   int64
	err error
}

func (f fakeCounter) Count(context.Context) (int64, error) { return f.n, f.err }

func statuses(r Result) []Status {
	out := make([]Status, 0, len(r.Items))
	for _, item := range r.Items {
		out = append(out, item.Status)
	}
	return out
}

func TestServerCheck(t *testing.T) {
	tests := []struct {
		name   string
		server fakeServer
		want   []Status
	}{
		{
			name:   "healthy",
			server: fakeServer{cats: []question.Category{{ID: 1, Name: "Cardiology"}}},
			want:   []Status{StatusPass, StatusPass},
		},
		{
			name:   "unreachable stops early",
			server: fakeServer{healthErr: errors.New("connection refused")},
			want:   []Status{StatusFail},
		},
		{
			name:   "no categories",
			server: fakeServer{},
			want:   []Status{StatusPass, StatusWarn},
		},
		{
			name:   "categories fail",
			server: fakeServer{catsErr: errors.New("500")},
			want:   []Status{StatusPass, StatusFail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewServerCheck(tt.server).Run(context.Background())
			assert.Equal(t, "Server", r.Name)
			assert.Equal(t, tt.want, statuses(r))
		})
	}
}

func TestDatabaseCheck(t *testing.T) {
	r := NewDatabaseCheck("/tmp/qaeval.db", fakeCounter{n: 3}).Run(context.Background())
	require.Len(t, r.Items, 2)
	assert.Equal(t, "3 notification(s)", r.Items[1].Detail)

	r = NewDatabaseCheck("/tmp/qaeval.db", fakeCounter{err: errors.New("locked")}).Run(context.Background())
	assert.Equal(t, []Status{StatusFail}, statuses(r))

	r = NewDatabaseCheck("", nil).Run(context.Background())
	assert.Equal(t, []Status{StatusWarn}, statuses(r))
}

func TestConfigCheck(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.DataDir = dir

		r := NewConfigCheck(&cfg, filepath.Join(dir, "absent.yaml")).Run(context.Background())
		assert.Equal(t, []Status{StatusWarn, StatusPass}, statuses(r))
	})

	t.Run("field errors are listed", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tui:\n  theme: nope\n"), 0o644))

		cfg := config.DefaultConfig()
		cfg.DataDir = dir
		cfg.TUI.Theme = "nope"
		cfg.Upload.Patterns = []string{"[broken"}

		r := NewConfigCheck(&cfg, path).Run(context.Background())
		assert.Equal(t, []Status{StatusPass, StatusFail, StatusFail}, statuses(r))
		assert.Equal(t, "tui.theme", r.Items[1].Label)
		assert.Equal(t, "upload.patterns[0]", r.Items[2].Label)
	})
}

func TestSummary(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		NewServerCheck(fakeServer{}),
		NewDatabaseCheck("db", fakeCounter{}),
	})

	passed, warned, failed := Summary(results)
	assert.Equal(t, 3, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 0, failed)
}
