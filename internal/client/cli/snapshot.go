package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ErrInvalidSnapshot возвращается, если импортируемый файл не является снимком прогресса
var ErrInvalidSnapshot = errors.New("invalid progress snapshot")

func (c *Cli) newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export local progress as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				snapshot, err := c.tracker.ExportSnapshot()
				if err != nil {
					return fmt.Errorf("failed to export progress: %w", err)
				}

				if out == "" {
					c.io.Println(snapshot)
					return nil
				}

				if err := os.WriteFile(out, []byte(snapshot+"\n"), 0o600); err != nil {
					return fmt.Errorf("failed to write snapshot: %w", err)
				}
				c.io.Printf("✓ Progress exported to %s\n", out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func (c *Cli) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace local progress with an exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				if !c.tracker.ImportSnapshot(ctx, string(data)) {
					return ErrInvalidSnapshot
				}
				c.io.Printf("✓ Imported progress: %d completed steps\n", c.tracker.CompletedStepCount())
				return nil
			})
		},
	}
}
