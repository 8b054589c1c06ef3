package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func (c *Cli) newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name [display-name]",
		Short: "Show or set the name your progress is reported under",
		Long: "Without arguments shows the current display name, asking for one if none is set.\n" +
			"Names are matched case-insensitively on the server, so use the same name on every device.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				if len(args) == 1 {
					return c.setName(ctx, args[0])
				}

				if name, ok := c.resolver.DisplayName(ctx); ok {
					c.io.Printf("Display name: %s\n", name)
					return nil
				}

				name, err := c.io.ReadInput("What's your first name? ")
				if err != nil {
					return err
				}
				return c.setName(ctx, name)
			})
		},
	}
}

func (c *Cli) setName(ctx context.Context, name string) error {
	saved, err := c.resolver.SetDisplayName(ctx, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	c.io.Printf("✓ Progress will be reported as %s\n", saved)
	return nil
}
