package iojson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine_OneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, map[string]int{"id": 1}))
	require.NoError(t, WriteLine(&buf, map[string]int{"id": 2}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{`{"id":1}`, `{"id":2}`}, lines)
}

func TestWriteLine_MarshalError(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLine(&buf, make(chan int))
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteWith_IndentsAndReportsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]string{"a": "b"}))
	assert.Contains(t, out.String(), "\n  \"a\": \"b\"")

	out.Reset()
	require.NoError(t, WriteWith(&out, &errOut, make(chan int)))
	assert.Empty(t, out.String())

	var e Error
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &e))
	assert.Equal(t, "error marshaling in iojson.Write", e.Message)
}
