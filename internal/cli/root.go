// Package cli holds the rentctl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"rentwear/internal/client"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type globals struct {
	apiURL string
	token  string
	output string
}

func (g *globals) client() *client.Client {
	return client.New(g.apiURL, client.WithToken(g.token))
}

func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "rentctl",
		Short: "Command line client for the rentwear API",
		Long: `rentctl talks to a running rentwear API.

Log in once with "rentctl login" and export the printed token as
RENTCTL_TOKEN, or pass it with --token.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()

			if !cmd.Flags().Changed("api-url") {
				if v := os.Getenv("RENTCTL_API_URL"); v != "" {
					g.apiURL = v
				}
			}
			if !cmd.Flags().Changed("token") {
				g.token = os.Getenv("RENTCTL_TOKEN")
			}
			switch g.output {
			case "text", "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported output format: %s", g.output)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&g.apiURL, "api-url", "http://localhost:8000", "API base URL (env RENTCTL_API_URL)")
	cmd.PersistentFlags().StringVar(&g.token, "token", "", "bearer token (env RENTCTL_TOKEN)")
	cmd.PersistentFlags().StringVarP(&g.output, "output", "o", "text", "output format: text, json or yaml")

	cmd.AddCommand(newLoginCmd(g))
	cmd.AddCommand(newFeedbackCmd(g))
	cmd.AddCommand(newReportCmd(g))
	cmd.AddCommand(newPasswordCmd(g))
	cmd.AddCommand(newPaymentCmd(g))

	return cmd
}

// render writes v as json or yaml, or calls text for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		// keys follow the json tags
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}
