package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yerdaulet/studytrack/internal/config"
	"github.com/yerdaulet/studytrack/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfg      *config.Config
	userFlag string
)

var rootCmd = &cobra.Command{
	Use:   "studytrack",
	Short: "A CLI study timer and productivity tracker",
	Long: `studytrack tracks time-boxed study sessions against your tasks and
turns the history into productivity analytics: streaks, estimation
accuracy, subject and time-of-day breakdowns, and plain-language insights.`,
}

// initDB loads configuration and opens the database, panicking on failure
func initDB() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}
	if err := db.Initialize(cfg); err != nil {
		panic(err)
	}
}

// currentUser resolves the acting user: --user flag first, then config
func currentUser() string {
	if userFlag != "" {
		return userFlag
	}
	return cfg.User
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("studytrack %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Act as this user (default from config)")

	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
