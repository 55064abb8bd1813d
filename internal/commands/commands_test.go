package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/qaeval/internal/api"
	"github.com/colonyops/qaeval/internal/core/config"
	"github.com/colonyops/qaeval/internal/data/db"
	"github.com/colonyops/qaeval/internal/data/stores"
	"github.com/colonyops/qaeval/internal/printer"
	"github.com/colonyops/qaeval/internal/qaeval"
)

// wireQuestion is a question row as the service sends it.
type wireQuestion struct {
	ID         int    `json:"id"`
	Question   string `json:"question_text"`
	Answer     string `json:"answer_text"`
	Topic      string `json:"-"`
	Score      *int   `json:"score"`
	Categories []int  `json:"categories"`
}

func score(v int) *int { return &v }

// fakeService is an in-memory evaluation service. Pages hold two rows.
type fakeService struct {
	questions  []wireQuestion
	categories []map[string]any
	upload     func(w http.ResponseWriter, r *http.Request)
	uploads    int
}

const fakePageSize = 2

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"categories": f.categories})
	})

	mux.HandleFunc("GET /api/questions", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		filter := r.URL.Query().Get("filter")

		var matched []wireQuestion
		for _, q := range f.questions {
			switch {
			case filter == "evaluated" && q.Score == nil:
			case filter == "unevaluated" && q.Score != nil:
			default:
				matched = append(matched, q)
			}
		}

		total := (len(matched) + fakePageSize - 1) / fakePageSize
		start := min((page-1)*fakePageSize, len(matched))
		end := min(start+fakePageSize, len(matched))

		writeJSON(w, http.StatusOK, map[string]any{
			"questions":    matched[start:end],
			"current_page": page,
			"total_pages":  total,
			"has_next":     page < total,
			"has_prev":     page > 1,
		})
	})

	mux.HandleFunc("GET /api/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, q := range f.questions {
			if q.ID == id {
				writeJSON(w, http.StatusOK, map[string]any{
					"id":         q.ID,
					"question":   q.Question,
					"answer":     q.Answer,
					"topic":      q.Topic,
					"categories": q.Categories,
				})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})

	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		f.uploads++
		if f.upload != nil {
			f.upload(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "File processed successfully",
			"summary": map[string]int{"total_questions_processed": 3},
		})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newFakeService() *fakeService {
	return &fakeService{
		questions: []wireQuestion{
			{ID: 1, Question: "What is the normal resting heart rate?", Answer: "60 to 100 bpm", Topic: "vitals", Score: score(1), Categories: []int{1}},
			{ID: 2, Question: "First line treatment for migraine?", Answer: "NSAIDs", Topic: "neuro", Score: score(0), Categories: []int{1, 2}},
			{ID: 3, Question: "Define tachycardia", Answer: "Heart rate above 100, \"fast\"", Topic: "vitals"},
		},
		categories: []map[string]any{
			{"id": 1, "name": "Cardiology"},
			{"id": 2, "name": "Neurology"},
		},
	}
}

type testEnv struct {
	svc   *fakeService
	app   *qaeval.App
	flags *Flags
	dir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.Server.URL = srv.URL

	client, err := api.New(srv.URL)
	require.NoError(t, err)

	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return &testEnv{
		svc:   svc,
		app:   qaeval.NewApp(&cfg, client, database, stores.NewNotifyStore(database)),
		flags: &Flags{ConfigPath: filepath.Join(dir, "config.yaml"), Config: &cfg},
		dir:   dir,
	}
}

// run executes args against a root command holding every subcommand and
// returns stdout and the printer output with ANSI stripped.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, status bytes.Buffer
	root := &cli.Command{
		Name:           "qaeval",
		Writer:         &out,
		ErrWriter:      &status,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	upload := NewUploadCmd(e.flags, e.app)
	upload.interactive = func() bool { return false }

	root = upload.Register(root)
	root = NewLsCmd(e.flags, e.app).Register(root)
	root = NewExportCmd(e.flags, e.app).Register(root)
	root = NewStatsCmd(e.flags, e.app).Register(root)
	root = NewCategoriesCmd(e.flags, e.app).Register(root)
	root = NewNotificationsCmd(e.flags, e.app).Register(root)
	root = NewDoctorCmd(e.flags, e.app).Register(root)
	root = NewConfigValidateCmd(e.flags, e.app).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&status))
	err := root.Run(ctx, append([]string{"qaeval"}, args...))
	return ansi.Strip(out.String()), ansi.Strip(status.String()), err
}

func (e *testEnv) writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04 fake spreadsheet"), 0o644))
	return path
}

func decodeLines[T any](t *testing.T, out string) []T {
	t.Helper()
	var items []T
	dec := json.NewDecoder(bytes.NewBufferString(out))
	for dec.More() {
		var v T
		require.NoError(t, dec.Decode(&v), fmt.Sprintf("output: %s", out))
		items = append(items, v)
	}
	return items
}
