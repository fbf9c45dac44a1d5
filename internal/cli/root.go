package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/examprep/internal/config"
	"github.com/existflow/examprep/internal/logger"
	"github.com/existflow/examprep/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	dataDir    string
	storage    string

	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "examprep",
	Short: "ExamPrep - Terminal study planner for exam preparation",
	Long: `ExamPrep is a terminal study planner: a day-by-day schedule of
subject tasks, a daily completion streak, and a focus timer that
tracks the time spent on each task.

Run 'examprep' without arguments to launch the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if cmd.Flags().Changed("storage") {
			cfg.Storage = storage
			configChanged = true
		}
		// --data-dir is a one-off override and is never saved
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("ExamPrep started", logger.F("command", cmd.Name()), logger.F("storage", cfg.Storage))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		// Launch TUI
		sess, err := openSession(cmd.Context())
		if err != nil {
			logger.Error("Failed to open storage", logger.F("error", err))
			return err
		}
		defer func() {
			_ = sess.Close()
			logger.Info("Storage closed")
		}()

		logger.Info("Launching TUI")
		m := tui.NewModel(sess, tui.Options{
			FocusMinutes:  cfg.FocusMinutes,
			BreakMinutes:  cfg.BreakMinutes,
			ConfirmDelete: cfg.ConfirmDelete,
		})
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("ExamPrep exiting", logger.F("command", cmd.Name()))
		_ = logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	// Storage flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the database")
	rootCmd.PersistentFlags().StringVar(&storage, "storage", "", "Storage backend (sqlite, bolt)")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(timeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(resetCmd)
}
