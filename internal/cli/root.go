// Package cli wires configuration, logging and services into the taskflow
// commands.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/taskflow/internal/app"
)

// NewRootCmd builds the command tree. The root command runs the board.
func NewRootCmd(version string) *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "Kanban task board with an AI planning assistant",
		Long: `taskflow is a terminal kanban board.

Tasks move through To Do, In Progress, Review and Done. With a Gemini API key
the assistant can break a goal into tasks and polish descriptions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(*opts)
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default .taskflow.json, then ~/.taskflow/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&opts.NoAI, "no-ai", false, "Disable the AI assistant")

	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd(version))

	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func runBoard(opts Options) error {
	deps, err := NewDependencies(opts)
	if err != nil {
		return err
	}
	defer deps.Close()

	deps.Logger.Info("starting board",
		"tasks", len(deps.Store.Snapshot().Tasks),
		"ai", deps.Planner != nil,
	)

	model := app.New(deps.Config, deps.Store, deps.Planner, deps.Logger)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if deps.Config.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskflow %s\n", version)
		},
	}
}
