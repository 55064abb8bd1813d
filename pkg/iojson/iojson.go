// Package iojson writes JSON for command output: indented documents for
// reports and compact lines for listings piped into other tools.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the document written to the error stream when a value cannot be
// encoded. It always indicates a bug.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func encodeFailure(msg string, cause error) string {
	bits, err := json.Marshal(Error{
		Message: msg,
		Data:    map[string]any{"json_error": cause.Error()},
	})
	if err != nil {
		return fmt.Sprintf("%s: %v", msg, cause)
	}
	return string(bits)
}

// WriteWith writes obj to w as indented JSON. Encoding failures are reported
// to ew as an Error document instead of being returned.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, encodeFailure("error marshaling in iojson.Write", err))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as a single compact JSON line, the framing used for
// streaming listings that are piped into other tools.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}
