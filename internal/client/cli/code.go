package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) newCodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Save or show the code written for a step",
	}

	cmd.AddCommand(c.newCodeSaveCmd(), c.newCodeShowCmd())
	return cmd
}

func (c *Cli) newCodeSaveCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save <step-id>",
		Short: "Save code for a step from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if file != "" {
				data, err = os.ReadFile(file)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read code: %w", err)
			}

			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				c.tracker.SaveCode(ctx, args[0], string(data))
				c.io.Printf("✓ Saved %d bytes for step %s\n", len(data), args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read code from file instead of stdin")
	return cmd
}

func (c *Cli) newCodeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <step-id>",
		Short: "Print saved code for a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				code, ok := c.tracker.Code(args[0])
				if !ok {
					return fmt.Errorf("no saved code for step %s", args[0])
				}
				c.io.Printf("%s", code)
				if !strings.HasSuffix(code, "\n") {
					c.io.Println()
				}
				return nil
			})
		},
	}
}
