package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/apputil/pkg/cli/internal/output"
	"github.com/getmockd/apputil/pkg/credentials"
)

func (a *app) newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Read and store API credentials",
		Long: `Credentials are stored as the "credentials" item of the configured storage
backend (--storage, --data-dir). Storing them publishes a credentials:updated
event.`,
	}

	var showSecret bool
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			c, err := credentials.NewManager(store, a.bus, a.log).Get(cmd.Context())
			if errors.Is(err, credentials.ErrNotFound) {
				return errors.New("no credentials stored - set them with: apputil credentials set --key K --secret S")
			}
			if err != nil {
				return err
			}
			if !showSecret {
				c = c.Redacted()
			}

			if a.jsonOutput() {
				return output.JSON(a.stdout, c)
			}
			tw := output.Table(a.stdout)
			fmt.Fprintf(tw, "key\t%s\n", c.Key)
			fmt.Fprintf(tw, "secret\t%s\n", c.Secret)
			return tw.Flush()
		},
	}
	get.Flags().BoolVar(&showSecret, "show-secret", false, "Print the key and secret unmasked")

	var key, secret string
	set := &cobra.Command{
		Use:     "set",
		Short:   "Store credentials",
		Example: `  apputil credentials set --key "$API_KEY" --secret "$API_SECRET"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			c := credentials.Credentials{Key: key, Secret: secret}
			if err := credentials.NewManager(store, a.bus, a.log).Set(cmd.Context(), c); err != nil {
				return err
			}

			if a.jsonOutput() {
				return output.JSON(a.stdout, map[string]any{"stored": true, "key": c.Redacted().Key})
			}
			fmt.Fprintln(a.stdout, "Credentials stored")
			return nil
		},
	}
	set.Flags().StringVar(&key, "key", "", "API key")
	set.Flags().StringVar(&secret, "secret", "", "API secret")
	_ = set.MarkFlagRequired("key")
	_ = set.MarkFlagRequired("secret")

	cmd.AddCommand(get, set)
	return cmd
}
