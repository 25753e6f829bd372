package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/catalog"
	"github.com/HerbHall/renewhub/internal/datasource"
	"github.com/HerbHall/renewhub/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive terminal client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := startLocation(category)
			if err != nil {
				return err
			}
			return runBrowse(start)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "open the products page on this category tab")
	return cmd
}

// startLocation maps --category onto the first location of the client.
func startLocation(category string) (string, error) {
	if category == "" {
		return tui.HomePath, nil
	}
	tab, ok := catalog.ParseTab(category)
	if !ok {
		return "", fmt.Errorf("unknown category %q", category)
	}
	return catalog.CategoryURL(tab), nil
}

func runBrowse(start string) error {
	cfg, settings, err := loadSettings()
	if err != nil {
		return err
	}

	logger, err := fileLogger(settings.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	src, err := datasource.New(settings, logger, nil)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}
	logger.Info("terminal client starting", zap.String("datasource", src.Name()), zap.String("start", start))

	model := tui.NewModel(src, tui.Options{
		Start:    start,
		PageSize: cfg.GetInt("modules.catalog.page_size"),
		Logger:   logger,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal client: %w", err)
	}
	return nil
}
