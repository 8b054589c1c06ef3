package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/tutortrack/internal/client/api"
	pkgapi "github.com/iudanet/tutortrack/pkg/api"
)

func (c *Cli) newReportCmd() *cobra.Command {
	var (
		asJSON       bool
		passwordFile string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show progress of all learners (instructor view)",
		Long: "Fetches the progress report from the server. When the server requires an admin\n" +
			"password it is taken from " + AdminPasswordEnv + ", --password-file or an interactive prompt.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				report, err := c.fetchReport(ctx, passwordFile)
				if err != nil {
					return err
				}

				if asJSON {
					enc := json.NewEncoder(c.io)
					enc.SetIndent("", "  ")
					return enc.Encode(report)
				}

				return c.printReport(report)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "file containing the admin password")
	return cmd
}

// fetchReport запрашивает отчет, при необходимости входя как администратор.
// Сохраненный токен используется повторно, пока сервер его принимает.
func (c *Cli) fetchReport(ctx context.Context, passwordFile string) (*pkgapi.ReportResponse, error) {
	token, _ := c.auth.Token(ctx)

	report, err := c.apiClient.GetReport(ctx, token)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, api.ErrUnauthorized) {
		return nil, err
	}

	if token != "" {
		c.logger.Debug("cached admin token rejected, logging in again")
		if err := c.auth.Logout(ctx); err != nil {
			c.logger.Warn("failed to drop admin session", slog.Any("error", err))
		}
	}

	password, err := c.getAdminPassword(passwordFile)
	if err != nil {
		return nil, err
	}

	session, err := c.auth.Login(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("admin login failed: %w", err)
	}

	return c.apiClient.GetReport(ctx, session.AccessToken)
}

func (c *Cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(ctx context.Context) error {
				if err := c.auth.Logout(ctx); err != nil {
					return err
				}
				c.io.Println("✓ Admin session removed")
				return nil
			})
		},
	}
}

func (c *Cli) printReport(report *pkgapi.ReportResponse) error {
	a := report.Analytics
	c.io.Printf("Learners: %d   Active this week: %d\n", a.TotalUsers, a.ActiveUsers)
	if !a.LastUpdated.IsZero() {
		c.io.Printf("Last updated: %s\n", a.LastUpdated.Local().Format(time.DateTime))
	}
	c.io.Println()

	if len(report.Users) == 0 {
		c.io.Println("No progress reported yet.")
		return nil
	}

	tw := tabwriter.NewWriter(c.io, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCHAPTER\tLAST STEP\tSTEPS\tPROGRESS\tLAST ACTIVE")
	for _, u := range report.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.0f%%\t%s\n",
			u.Name,
			u.LastChapter,
			u.LastStep,
			u.StepsCompleted,
			u.ProgressPercent,
			u.LastActivity.Local().Format(time.DateTime),
		)
	}
	return tw.Flush()
}
