package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// UploadResult is the service's summary of a processed spreadsheet.
type UploadResult struct {
	Message                 string
	TotalQuestionsProcessed int
}

type uploadBody struct {
	Message string `json:"message"`
	Summary struct {
		TotalQuestionsProcessed int `json:"total_questions_processed"`
	} `json:"summary"`
}

// UploadFile uploads the spreadsheet at path.
func (c *Client) UploadFile(ctx context.Context, path string) (UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return UploadResult{}, fmt.Errorf("open upload file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return c.Upload(ctx, filepath.Base(path), f)
}

// Upload posts r as the multipart "file" field. A rejection is returned as
// *UploadError carrying every duplicate id and row the service reported.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("close multipart writer: %w", err)
	}

	const op = "upload"
	status, data, err := c.send(ctx, op, http.MethodPost, "/api/upload", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return UploadResult{}, err
	}

	if status < 200 || status > 299 {
		eb := decodeErrorBody(data)
		c.logger.Warn().
			Int("status", status).
			Str("error", eb.Error).
			Int("duplicate_ids", len(eb.DuplicateQuestionIDs)).
			Int("duplicate_rows", len(eb.DuplicateRows)).
			Int("empty_rows", len(eb.EmptyRows)).
			Msg("upload rejected")
		return UploadResult{}, &UploadError{
			Status:               status,
			Message:              eb.Error,
			DuplicateQuestionIDs: eb.DuplicateQuestionIDs,
			DuplicateRows:        eb.DuplicateRows,
			EmptyRows:            eb.EmptyRows,
		}
	}

	var body uploadBody
	if err := json.Unmarshal(data, &body); err != nil {
		return UploadResult{}, fmt.Errorf("%s: decode response: %w", op, err)
	}

	return UploadResult{
		Message:                 body.Message,
		TotalQuestionsProcessed: body.Summary.TotalQuestionsProcessed,
	}, nil
}
