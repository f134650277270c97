package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, struct {
		Name string `json:"name"`
	}{"Ann"}))
	assert.Equal(t, "{\n  \"name\": \"Ann\"\n}\n", buf.String())
}

func TestDocument(t *testing.T) {
	doc := map[string]any{"b": int64(1), "a": []any{true, nil, "x"}}
	assert.Equal(t, `{"a":[true,null,"x"],"b":1}`, Document(doc, 0))
	assert.Contains(t, Document(doc, 2), "\n  \"a\"")
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tw := Table(&buf)
	fmt.Fprintln(tw, "KEY\tVALUE")
	fmt.Fprintln(tw, "storage\tmemory")
	require.NoError(t, tw.Flush())
	assert.Equal(t, "KEY      VALUE\nstorage  memory\n", buf.String())
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	Warn(&buf, "%d files skipped", 2)
	assert.Equal(t, "Warning: 2 files skipped\n", buf.String())
}
