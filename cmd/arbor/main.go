package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"arbor/internal/config"
	"arbor/internal/log"
	"arbor/internal/tui"
)

var version = "dev"

func main() {
	var (
		configPath string
		showHidden bool
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:     "arbor [directory]",
		Short:   "A keyboard-driven terminal file-tree explorer",
		Long:    `Arbor browses a directory tree with keyboard-only control: lazy folder expansion, a live preview pane, and a fuzzy filter overlay.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			var err error
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if showHidden {
				cfg.Settings.ShowHidden = true
			}

			if err := log.Setup(cfg.LogFile(), debug); err != nil {
				return fmt.Errorf("error opening log file: %w", err)
			}

			root := cfg.Directories.Start
			if len(args) > 0 {
				root = args[0]
			}
			if root == "" {
				root, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("error getting current directory: %w", err)
				}
			}

			model, err := tui.NewModel(cfg, root)
			if err != nil {
				return err
			}

			log.Infof("starting arbor %s in %s", version, root)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&showHidden, "hidden", false, "show hidden files")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
