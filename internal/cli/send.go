package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/internal/config"
	"github.com/dmitrymomot/mailforge/internal/welcome"
	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
)

func newSendCommand(cfg func() *config.Config) *cobra.Command {
	var (
		req      welcome.SendRequest
		htmlFile string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one welcome email",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if htmlFile != "" {
				raw, err := os.ReadFile(htmlFile)
				if err != nil {
					return fmt.Errorf("read html: %w", err)
				}
				req.HTML = string(raw)
			}
			if err := sanitizer.SanitizeStruct(&req); err != nil {
				return err
			}

			c := cfg()
			log := newLogger(c)
			d, err := buildDeps(cmd.Context(), c, log, nil)
			if err != nil {
				return err
			}
			defer func() { _ = d.close(cmd.Context()) }()

			out, err := d.service.Send(cmd.Context(), req)
			if err != nil {
				if out != nil && out.Err != nil {
					return fmt.Errorf("send failed: %w", out.Err)
				}
				return describe(err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", out.MessageID)
			return err
		},
	}

	cmd.Flags().StringVarP(&req.To, "to", "t", "", "recipient address")
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "recipient display name")
	cmd.Flags().StringVarP(&req.Message, "message", "m", "", "welcome message")
	cmd.Flags().StringVar(&htmlFile, "html", "", "send this HTML file instead of the template")
	return cmd
}
