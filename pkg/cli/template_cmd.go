package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/getmockd/apputil/pkg/cli/internal/output"
	"github.com/getmockd/apputil/pkg/cli/internal/parse"
	"github.com/getmockd/apputil/pkg/property"
	"github.com/getmockd/apputil/pkg/template"
	"github.com/getmockd/apputil/pkg/util"
)

// logBodySize caps rendered output attached to debug logs.
const logBodySize = 256

// errNoValue is returned by get when a path does not resolve.
var errNoValue = errors.New("no value")

func addContextFlags(cmd *cobra.Command, opts *contextOptions) {
	cmd.Flags().StringVarP(&opts.path, "context", "c", "", "Context document (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&opts.selExp, "select", "", "JSONPath expression selecting the context inside the document")
	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "Set a context value (path=value, repeatable)")
}

func (a *app) newVarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vars <template>",
		Short: "List the variables used by a template",
		Example: `  apputil vars 'Hello {{ user.name }}, you have {{ count }} messages'
  apputil vars --json '{{a}} {{b}}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars := template.Variables(args[0])
			if a.jsonOutput() {
				return output.JSON(a.stdout, vars)
			}
			for _, v := range vars {
				fmt.Fprintln(a.stdout, v)
			}
			return nil
		},
	}
}

func (a *app) newRenderCmd() *cobra.Command {
	var (
		opts contextOptions
		glob string
	)

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Interpolate a template against a context",
		Long: `Replace every {{ path }} token of the template with the value found at that
property path in the context. Missing values render as empty strings.

With --glob every matching file is rendered instead of the template argument.
With --json a template made of a single token prints the typed value.`,
		Example: `  apputil render -c user.json 'Hello {{ name }}'
  apputil render -c data.yaml --select '$.users[0]' '{{ first }} {{ last }}'
  apputil render -c env.json --glob 'templates/**/*.tmpl'
  echo '{"n": 3}' | apputil render -c - --json '{{ n }}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if glob == "" && len(args) == 0 {
				return errors.New("a template argument or --glob is required")
			}
			if glob != "" && len(args) > 0 {
				return errors.New("use either a template argument or --glob, not both")
			}

			ctx, _, err := a.loadContext(opts)
			if err != nil {
				return err
			}

			if glob != "" {
				return a.renderFiles(ctx, glob)
			}

			if a.jsonOutput() {
				v, _ := template.Interpolate(ctx, args[0])
				return output.JSON(a.stdout, v)
			}
			result := template.InterpolateString(ctx, args[0])
			a.log.Debug("rendered template", "body", util.TruncateBody(result, logBodySize))
			fmt.Fprintln(a.stdout, result)
			return nil
		},
	}

	addContextFlags(cmd, &opts)
	cmd.Flags().StringVar(&glob, "glob", "", "Render every file matching the pattern (** supported)")
	return cmd
}

// renderFiles renders every file matching pattern, in path order.
func (a *app) renderFiles(ctx any, pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("expanding glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match %q", pattern)
	}
	sort.Strings(matches)

	rendered := make(map[string]string, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rendered[path] = template.InterpolateString(ctx, string(data))
		a.log.Debug("rendered file", "path", path,
			"variables", len(template.Variables(string(data))),
			"body", util.TruncateBody(rendered[path], logBodySize))
	}

	if a.jsonOutput() {
		return output.JSON(a.stdout, rendered)
	}
	if len(matches) == 1 {
		_, err := io.WriteString(a.stdout, rendered[matches[0]])
		return err
	}
	for i, path := range matches {
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		fmt.Fprintf(a.stdout, "==> %s <==\n", path)
		fmt.Fprint(a.stdout, rendered[path])
		if !strings.HasSuffix(rendered[path], "\n") {
			fmt.Fprintln(a.stdout)
		}
	}
	return nil
}

func (a *app) newGetCmd() *cobra.Command {
	var opts contextOptions

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Print the value at a property path",
		Long: `Resolve a dot-separated property path (for example users.0.name or
items.length) in the context. Strings are printed as is, other values as
JSON. Exits with an error when the path has no value.`,
		Example: `  apputil get -c data.json users.length
  apputil get -c data.yaml --json settings.theme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, err := a.loadContext(opts)
			if err != nil {
				return err
			}

			v, ok := property.Get(ctx, args[0])
			if !ok {
				return fmt.Errorf("%w at %q", errNoValue, args[0])
			}
			if s, isString := v.(string); isString && !a.jsonOutput() {
				fmt.Fprintln(a.stdout, s)
				return nil
			}
			fmt.Fprintln(a.stdout, output.Document(v, 0))
			return nil
		},
	}

	addContextFlags(cmd, &opts)
	return cmd
}

func (a *app) newSetCmd() *cobra.Command {
	var (
		opts  contextOptions
		write bool
	)

	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set the value at a property path",
		Long: `Assign a value at a dot-separated property path, creating missing
intermediate objects. The value is parsed as JSON when valid (42, true,
null, {"a":1}) and used as a string otherwise.

The updated document is printed, or written back to the context file with
--write.`,
		Example: `  apputil set -c data.json user.address.city Oslo
  apputil set -c data.yaml --write features.beta true`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && (opts.path == "" || opts.path == stdinPath) {
				return errors.New("--write needs a context file (-c)")
			}
			if write && opts.selExp != "" {
				return errors.New("--write cannot be combined with --select")
			}

			ctx, doc, err := a.loadContext(opts)
			if err != nil {
				return err
			}
			if doc == nil {
				doc = &document{path: stdinPath, format: formatJSON, data: ctx}
			}

			if err := property.Set(ctx, args[0], parse.Value(args[1])); err != nil {
				return err
			}
			a.log.Debug("property set", "path", args[0])

			if write {
				if err := doc.write(); err != nil {
					return err
				}
				a.log.Info("context updated", "path", doc.path)
				return nil
			}

			if a.jsonOutput() || opts.selExp != "" {
				fmt.Fprintln(a.stdout, output.Document(ctx, 2))
				return nil
			}
			data, err := doc.encode()
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}

	addContextFlags(cmd, &opts)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the context file")
	return cmd
}
