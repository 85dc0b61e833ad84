package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/internal/config"
	"github.com/dmitrymomot/mailforge/internal/welcome"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/mailer"
	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
	"github.com/dmitrymomot/mailforge/pkg/template"
	"github.com/dmitrymomot/mailforge/pkg/validator"
)

func newRenderCommand(cfg func() *config.Config) *cobra.Command {
	var (
		req        welcome.PreviewRequest
		designFile string
		output     string
		blocks     []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the email HTML without sending it",
		Long: `Render the welcome email and write the HTML to stdout or a file.

With --design the blocks come from an editor design JSON file. With
--block the composition is built from the given kinds in order, for
example --block welcome_header --block "markdown=**Thanks** for joining".
Otherwise the fixed welcome template is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if designFile != "" {
				raw, err := os.ReadFile(designFile)
				if err != nil {
					return fmt.Errorf("read design: %w", err)
				}
				req.Design = raw
			}
			if len(blocks) > 0 {
				comp := template.NewComposition(nil)
				for _, arg := range blocks {
					kind, content, _ := strings.Cut(arg, "=")
					comp.Add(template.BlockKind(kind), content)
				}
				req.Blocks = comp.Blocks()
			}
			if err := sanitizer.SanitizeStruct(&req); err != nil {
				return err
			}

			c := cfg()
			svc := welcome.NewService(newAssembler(c), mailer.New(nil, c.Mailer), welcome.WithLogger(logger.NewNope()))
			r, err := svc.Preview(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			_, err = io.WriteString(w, r.HTML)
			return err
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "recipient display name")
	cmd.Flags().StringVarP(&req.Message, "message", "m", "", "welcome message")
	cmd.Flags().StringVarP(&designFile, "design", "d", "", "editor design JSON file")
	cmd.Flags().StringArrayVarP(&blocks, "block", "b", nil, "block kind with optional content (kind=content), repeatable")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// describe prefixes validation errors for terminal output.
func describe(err error) error {
	ve := validator.ExtractValidationErrors(err)
	if ve == nil {
		return err
	}
	return fmt.Errorf("invalid input: %w", ve)
}
