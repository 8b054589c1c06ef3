package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/tutortrack/internal/curriculum"
)

func (c *Cli) newChaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List chapters and whether they are unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				completed := c.completedSet()
				for _, ch := range c.table.Chapters() {
					missing := c.table.MissingPrerequisites(ch.Number, completed)
					mark := "✓"
					if len(missing) > 0 {
						mark = "·"
					}
					c.io.Printf("%s %2d. %s", mark, ch.Number, ch.Title)
					if len(missing) > 0 {
						c.io.Printf(" (%d of %d prerequisites missing)", len(missing), len(ch.Prerequisites))
					}
					c.io.Println()
				}
				return nil
			})
		},
	}
}

func (c *Cli) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <chapter>",
		Short: "Show what is missing before a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				target, err := c.parseChapter(args[0])
				if err != nil {
					return err
				}

				completed := c.completedSet()
				missing := c.table.MissingPrerequisites(target, completed)
				if len(missing) == 0 {
					c.io.Printf("✓ Chapter %d (%s) is unlocked\n", target, c.table.Title(target))
					return nil
				}

				c.printWarning(curriculum.Warning{
					Target:          target,
					MissingSteps:    missing,
					SkippedChapters: c.table.SkippedChapters(target, completed),
				})
				return nil
			})
		},
	}
}

func (c *Cli) newGotoCmd() *cobra.Command {
	var (
		from int
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "goto <chapter>",
		Short: "Move to a chapter, warning about skipped prerequisites",
		Long: "Moves to a chapter given as a number or as /tutorial/chapter-N.\n" +
			"Moving forward past incomplete chapters asks for confirmation; moving back never does.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				target, err := c.parseChapter(args[0])
				if err != nil {
					return err
				}

				completed := c.completedSet()
				current := from
				if current == 0 {
					current = c.table.CurrentChapter(completed)
				}

				nav := curriculum.NewNavigator(c.table, current, completed)
				if nav.Navigate(target) == curriculum.StateProceeding {
					c.printNavigated(target)
					return nil
				}

				warning, _ := nav.Warning()
				c.printWarning(warning)

				proceed := yes
				if !proceed {
					proceed, err = c.io.Confirm("Continue anyway?")
					if err != nil {
						return err
					}
				}

				if !proceed {
					if err := nav.Cancel(); err != nil {
						return err
					}
					c.io.Printf("Staying on chapter %d (%s)\n", nav.Current(), c.table.Title(nav.Current()))
					return nil
				}

				dest, err := nav.Proceed()
				if err != nil {
					return err
				}
				c.printNavigated(dest)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "chapter you are on now (default: furthest unlocked chapter)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "proceed without confirmation")
	return cmd
}

func (c *Cli) printNavigated(chapter int) {
	c.io.Printf("→ %s: Chapter %d - %s\n", curriculum.ChapterPath(chapter), chapter, c.table.Title(chapter))
}

// printWarning выводит предупреждение о пропускаемых главах
func (c *Cli) printWarning(w curriculum.Warning) {
	c.io.Printf("⚠️  Chapter %d (%s) builds on steps you have not completed.\n", w.Target, c.table.Title(w.Target))

	if len(w.SkippedChapters) > 0 {
		c.io.Println()
		c.io.Println("You would skip:")
		for _, ch := range w.SkippedChapters {
			c.io.Printf("  - Chapter %d: %s\n", ch, c.table.Title(ch))
		}
	}

	c.io.Println()
	c.io.Printf("Missing steps: %s\n", strings.Join(w.MissingSteps, ", "))
	c.io.Printf("%d step(s) to complete before chapter %d.\n", len(w.MissingSteps), w.Target)
}
