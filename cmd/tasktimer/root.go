package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagDuration time.Duration
	flagBackend  string
)

var rootCmd = &cobra.Command{
	Use:   "tasktimer",
	Short: "To-do list with a focus countdown",
	Long: `tasktimer keeps a to-do list in the terminal and runs a single shared
focus countdown (25 minutes by default) that can be started from any task.

With no arguments, launches the interactive TUI. Tasks live only for the
duration of the process.

Keys:
  a/n      add a task         enter/e  edit the selected task
  d        delete a task      s        start the timer
  ctrl+s   save the dialog    esc      cancel the dialog or close the timer
  q        quit`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Countdown length, overriding timer.duration (e.g. 50m)")
	rootCmd.Flags().StringVar(&flagBackend, "backend", "", "Task backend, overriding tasks.backend (memory or sqlite)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}
