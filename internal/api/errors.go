package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// NetworkError is a transport-level failure: the request produced no response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RejectedError is a response with a non-success status code. Message holds
// the server's "error" field when one was sent.
type RejectedError struct {
	Op      string
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: rejected with status %d: %s", e.Op, e.Status, e.Message)
}

// UploadError is a structured upload rejection. Every offending question id
// and row reported by the server is kept so callers can enumerate them.
type UploadError struct {
	Status               int
	Message              string
	DuplicateQuestionIDs IDList
	DuplicateRows        IDList
	EmptyRows            IDList
}

func (e *UploadError) Error() string {
	return "upload rejected: " + strings.Join(e.Details(), "; ")
}

// Details returns one line for the message and one per reported problem group.
func (e *UploadError) Details() []string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("status %d", e.Status)
	}

	lines := []string{msg}
	if len(e.DuplicateQuestionIDs) > 0 {
		lines = append(lines, "duplicate question ids: "+e.DuplicateQuestionIDs.String())
	}
	if len(e.DuplicateRows) > 0 {
		lines = append(lines, "rows with duplicates: "+e.DuplicateRows.String())
	}
	if len(e.EmptyRows) > 0 {
		lines = append(lines, "empty rows: "+e.EmptyRows.String())
	}
	return lines
}

// IDList is a list of identifiers reported by the server. Entries may arrive
// as JSON numbers or strings and are kept verbatim.
type IDList []string

// UnmarshalJSON accepts an array of numbers and/or strings.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(IDList, 0, len(raw))
	for _, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) > 0 && r[0] == '"' {
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return err
			}
			out = append(out, s)
			continue
		}

		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return err
		}
		out = append(out, n.String())
	}
	*l = out
	return nil
}

func (l IDList) String() string {
	return strings.Join(l, ", ")
}

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsRejected reports whether err is a non-success response.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// errorBody is the server's error payload shape.
type errorBody struct {
	Error                string `json:"error"`
	DuplicateQuestionIDs IDList `json:"duplicate_question_ids"`
	DuplicateRows        IDList `json:"duplicate_rows"`
	EmptyRows            IDList `json:"empty_rows"`
}

func decodeErrorBody(body []byte) errorBody {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		eb.Error = strings.TrimSpace(string(body))
		if len(eb.Error) > 200 {
			eb.Error = eb.Error[:200]
		}
	}
	return eb
}
