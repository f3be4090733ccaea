package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/tessellate/internal/cli/model"
	"github.com/bnema/tessellate/internal/infrastructure/loopback"
)

var (
	tuiWindows int
	tuiArea    string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive layout preview",
	Long: `Run a producer and a consumer back to back in this process and show the
layout they agree on. Add and remove windows, cycle strategies and switch
tags to see how every strategy of the configured cycle behaves.

Keys:
  + / a       add a window
  - / x       remove the last window
  tab / l     next strategy for the current tag
  S-tab / h   previous strategy
  ] / [       next / previous tag
  ?           full help
  q           quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().IntVarP(&tuiWindows, "windows", "n", 3, "initial number of windows")
	tuiCmd.Flags().StringVarP(&tuiArea, "area", "a", "1920x1080", "usable area WIDTHxHEIGHT[+X+Y]")
}

func runTUI(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	area, err := parseArea(tuiArea)
	if err != nil {
		return err
	}

	producer, err := app.NewProducer(nil)
	if err != nil {
		return err
	}
	ch := loopback.New(producer)
	producer.SetNotifier(ch)

	rec := loopback.NewRecorder(nil)
	consumer, err := app.NewConsumer(ch, rec)
	if err != nil {
		return err
	}
	defer consumer.Close()
	ch.Bind(consumer)

	m := model.NewPreviewModel(app.Ctx(), app.Theme, producer, consumer, rec, area, tuiWindows)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}
