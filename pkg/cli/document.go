package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/apputil/pkg/cli/internal/output"
	"github.com/getmockd/apputil/pkg/cli/internal/parse"
	"github.com/getmockd/apputil/pkg/property"
)

// docFormat is the encoding of a context document.
type docFormat string

const (
	formatJSON docFormat = "json"
	formatYAML docFormat = "yaml"
)

// stdinPath reads the document from standard input.
const stdinPath = "-"

// document is a context loaded from a JSON or YAML file.
type document struct {
	path   string
	format docFormat
	data   any
}

// contextOptions are the flags shared by commands that take a context.
type contextOptions struct {
	path   string
	selExp string
	vars   []string
}

// formatFor picks the decoder by file extension. Anything that is not
// .yaml/.yml is read as JSON.
func formatFor(path string) docFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// loadDocument reads and decodes path. stdin is used when path is "-"; its
// content is decoded as JSON when possible and as YAML otherwise.
func loadDocument(path string, stdin io.Reader) (*document, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read context: %w", err)
	}

	doc := &document{path: path, format: formatFor(path)}
	if len(bytes.TrimSpace(data)) == 0 {
		doc.data = map[string]any{}
		return doc, nil
	}

	if path == stdinPath {
		if v, err := oj.Parse(data); err == nil {
			doc.data = v
			return doc, nil
		}
		doc.format = formatYAML
	}

	switch doc.format {
	case formatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		doc.data = v
	default:
		v, err := oj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		doc.data = v
	}
	return doc, nil
}

// encode renders the document in its own format.
func (d *document) encode() ([]byte, error) {
	if d.format == formatYAML {
		return yaml.Marshal(d.data)
	}
	return []byte(output.Document(d.data, 2) + "\n"), nil
}

// write stores the document back to its file, keeping the file mode.
func (d *document) write() error {
	if d.path == stdinPath {
		return errors.New("cannot write back a context read from stdin")
	}
	data, err := d.encode()
	if err != nil {
		return err
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(d.path, data, mode)
}

// selectPath narrows data with a JSONPath expression. A single match is
// returned as is; several matches are returned as a list.
func selectPath(data any, expr string) (any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid --select expression %q: %w", expr, err)
	}
	results := x.Get(data)
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("--select %q matched nothing", expr)
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// applyVars sets every "path=value" assignment on ctx.
func applyVars(ctx any, vars []string) error {
	for _, v := range vars {
		key, value, ok := parse.KeyValue(v)
		if !ok || key == "" {
			return fmt.Errorf("invalid --var %q: expected path=value", v)
		}
		if err := property.Set(ctx, key, parse.Value(value)); err != nil {
			return err
		}
	}
	return nil
}

// loadContext builds the interpolation context from the context flags.
// Without a document the context is an empty map.
func (a *app) loadContext(opts contextOptions) (any, *document, error) {
	var (
		ctx any = map[string]any{}
		doc *document
	)
	if opts.path != "" {
		d, err := loadDocument(opts.path, a.stdin)
		if err != nil {
			return nil, nil, err
		}
		doc = d
		ctx = d.data
		a.log.Debug("context loaded", "path", d.path, "format", d.format)
	}

	if opts.selExp != "" {
		v, err := selectPath(ctx, opts.selExp)
		if err != nil {
			return nil, nil, err
		}
		ctx = v
	}

	if err := applyVars(ctx, opts.vars); err != nil {
		return nil, nil, err
	}
	return ctx, doc, nil
}
