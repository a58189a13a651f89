package cmd

import (
	"github.com/spf13/cobra"

	"github.com/studykit/studykit/internal/config"
)

// settings merges the config file, STUDYKIT_* variables and the persistent
// flags below.
var settings = config.New()

var rootCmd = &cobra.Command{
	Use:   "studykit",
	Short: "Practice, flashcards and timed exams in the terminal",
	Long: `studykit stores question sets and lets you study them as flashcards,
untimed practice or timed exams, keeping a scored history of every attempt.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/studykit/config.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides STUDYKIT_DB env var)")
	flags.String("profile", "", "Profile that owns sets and attempts")
	flags.String("log-file", "", "Path to log file (default $XDG_STATE_HOME/studykit/studykit.log)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	_ = settings.BindPFlag(config.KeyDB, flags.Lookup("db"))
	_ = settings.BindPFlag(config.KeyProfile, flags.Lookup("profile"))
	_ = settings.BindPFlag(config.KeyLogFile, flags.Lookup("log-file"))
	_ = settings.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(attemptsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(versionCmd)
}
