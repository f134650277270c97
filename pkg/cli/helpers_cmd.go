package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/apputil/internal/id"
	"github.com/getmockd/apputil/pkg/cli/internal/output"
	"github.com/getmockd/apputil/pkg/phone"
	"github.com/getmockd/apputil/pkg/util"
)

// maxIDs caps uuid -n.
const maxIDs = 10000

func (a *app) newUUIDCmd() *cobra.Command {
	var (
		count int
		ulid  bool
		short bool
		upper bool
	)

	cmd := &cobra.Command{
		Use:   "uuid",
		Short: "Generate random identifiers",
		Example: `  apputil uuid
  apputil uuid -n 5 --ulid
  apputil uuid --short`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 || count > maxIDs {
				return fmt.Errorf("-n must be between 1 and %d", maxIDs)
			}
			if ulid && short {
				return errors.New("--ulid and --short are mutually exclusive")
			}

			gen := id.UUID
			switch {
			case ulid:
				gen = id.ULID
			case short:
				gen = id.Short
			}

			ids := make([]string, count)
			for i := range ids {
				ids[i] = gen()
				if upper {
					ids[i] = strings.ToUpper(ids[i])
				}
			}

			if a.jsonOutput() {
				return output.JSON(a.stdout, ids)
			}
			for _, s := range ids {
				fmt.Fprintln(a.stdout, s)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of identifiers")
	cmd.Flags().BoolVar(&ulid, "ulid", false, "Generate ULIDs instead of UUIDs")
	cmd.Flags().BoolVar(&short, "short", false, "Generate 16 character hex ids")
	cmd.Flags().BoolVar(&upper, "upper", false, "Print in upper case")
	return cmd
}

type phoneResult struct {
	Input  string `json:"input"`
	Result string `json:"result"`
}

func (a *app) newPhoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Normalize and format phone numbers",
	}

	var country string
	normalize := &cobra.Command{
		Use:   "normalize <number>...",
		Short: "Reduce numbers to digits with the country code",
		Example: `  apputil phone normalize '8 (495) 753-20-01'
  apputil phone normalize --country 1 4155550123`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := a.cfg.CountryCode
			if cmd.Flags().Changed("country") {
				code = country
			}
			return a.printPhones(args, func(n string) string { return phone.Normalize(n, code) })
		},
	}
	normalize.Flags().StringVar(&country, "country", "", "Country code for numbers without one (default from config)")

	pretty := &cobra.Command{
		Use:     "pretty <number>...",
		Short:   "Format numbers as +7 (495) 753 20 01",
		Example: `  apputil phone pretty 84957532001`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printPhones(args, phone.Pretty)
		},
	}

	cmd.AddCommand(normalize, pretty)
	return cmd
}

func (a *app) printPhones(numbers []string, fn func(string) string) error {
	results := make([]phoneResult, len(numbers))
	for i, n := range numbers {
		results[i] = phoneResult{Input: n, Result: fn(n)}
	}
	if a.jsonOutput() {
		return output.JSON(a.stdout, results)
	}
	for _, r := range results {
		fmt.Fprintln(a.stdout, r.Result)
	}
	return nil
}

func (a *app) newDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <duration>",
		Short: "Format a duration as HH:MM:SS",
		Long: `Format a Go duration (1h30m, 90s, -2m5s) or a whole number of seconds as
HH:MM:SS. Hours wrap at 24 and negative durations print their magnitude.`,
		Example: `  apputil duration 1h2m3s
  apputil duration 3725`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDuration(args[0])
			if err != nil {
				return err
			}
			s := util.FormatDuration(d)
			if a.jsonOutput() {
				return output.JSON(a.stdout, map[string]any{"seconds": int64(d / time.Second), "formatted": s})
			}
			fmt.Fprintln(a.stdout, s)
			return nil
		},
	}
}

// maxSeconds is the largest whole number of seconds a time.Duration holds.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// parseDuration accepts Go duration syntax or a whole number of seconds.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > maxSeconds || n < -maxSeconds {
			return 0, fmt.Errorf("invalid duration %q: at most %d seconds", s, maxSeconds)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: use Go syntax (1h2m3s) or seconds", s)
	}
	return d, nil
}
