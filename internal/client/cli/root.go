package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/tutortrack/internal/client/iocli"
)

// AppName имя бинарного файла клиента
const AppName = "tutor"

// NewRootCmd создает корневую команду клиента
func NewRootCmd(version string, io iocli.IO) *cobra.Command {
	c := New(io)

	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "TutorTrack client - track your tutorial progress",
		Long:          "TutorTrack keeps your tutorial progress locally and reports it to the course server once you set a display name.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.settings.ServerURL, "server", c.settings.ServerURL, "progress server URL")
	flags.StringVar(&c.settings.DBPath, "db", c.settings.DBPath, "path to local database")
	flags.StringVar(&c.settings.ChaptersFile, "chapters", "", "YAML file overriding the chapter table")
	flags.DurationVar(&c.settings.ReportTimeout, "report-timeout", c.settings.ReportTimeout, "timeout for one progress report")
	flags.BoolVar(&c.settings.Verbose, "verbose", false, "verbose logging")

	cmd.AddCommand(
		c.newNameCmd(),
		c.newCompleteCmd(),
		c.newSectionCmd(),
		c.newCodeCmd(),
		c.newStatusCmd(),
		c.newResetCmd(),
		c.newExportCmd(),
		c.newImportCmd(),
		c.newChaptersCmd(),
		c.newCheckCmd(),
		c.newGotoCmd(),
		c.newReportCmd(),
		c.newLogoutCmd(),
	)

	return cmd
}
