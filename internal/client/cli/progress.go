package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func (c *Cli) newCompleteCmd() *cobra.Command {
	var chapter string

	cmd := &cobra.Command{
		Use:   "complete <step-id>",
		Short: "Mark a step as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				stepID := args[0]
				already := c.tracker.IsStepComplete(stepID)

				c.tracker.MarkStepComplete(ctx, stepID, chapter)

				if already {
					c.io.Printf("Step %s was already completed\n", stepID)
				} else {
					c.io.Printf("✓ Step %s completed\n", stepID)
				}
				c.printReportingHint(ctx)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&chapter, "chapter", "c", "", "chapter the step belongs to")
	return cmd
}

func (c *Cli) newSectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "section <section-id>",
		Short: "Mark a section as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				c.tracker.MarkSectionComplete(ctx, args[0])
				c.io.Printf("✓ Section %s completed\n", args[0])
				c.printReportingHint(ctx)
				return nil
			})
		},
	}
}

// printReportingHint напоминает, что без имени прогресс остается локальным
func (c *Cli) printReportingHint(ctx context.Context) {
	if _, ok := c.resolver.DisplayName(ctx); !ok {
		c.io.Println("Progress saved locally only. Run 'tutor name' to share it with your instructor.")
	}
}

func (c *Cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), c.runStatus)
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Progress Status ===")
	c.io.Println()

	if name, ok := c.resolver.DisplayName(ctx); ok {
		c.io.Printf("Name: %s\n", name)
		c.io.Printf("Server: %s\n", c.settings.ServerURL)
	} else {
		c.io.Println("Name: not set (progress is not reported)")
	}

	current := c.table.CurrentChapter(c.completedSet())
	c.io.Printf("Completed steps: %d\n", c.tracker.CompletedStepCount())
	c.io.Printf("Current chapter: %d - %s\n", current, c.table.Title(current))

	if last, ok := c.tracker.LastVisited(); ok {
		c.io.Printf("Last activity: %s\n", last.Local().Format(time.DateTime))
	}

	steps := c.tracker.CompletedSteps()
	if len(steps) > 0 {
		c.io.Println()
		for _, step := range steps {
			c.io.Printf("  ✓ %s\n", step)
		}
	}

	return nil
}

func (c *Cli) newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all local progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				if !yes {
					ok, err := c.io.Confirm("This erases all local progress and cannot be undone. Continue?")
					if err != nil {
						return err
					}
					if !ok {
						c.io.Println("Reset cancelled")
						return nil
					}
				}

				c.tracker.Reset(ctx)
				c.io.Println("✓ Local progress erased")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
