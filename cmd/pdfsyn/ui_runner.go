package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pdfsyntax/internal/driver"
	"pdfsyntax/internal/ui"
)

type diagnoseOutcome struct {
	result *driver.DiagnoseResult
	err    error
}

// runDiagnoseWithUI runs the driver in the background and renders its
// progress events until the run finishes.
func runDiagnoseWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.DiagnoseResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan diagnoseOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink(events)
		res, err := driver.DiagnoseFiles(ctx, files, optsCopy)
		outcomeCh <- diagnoseOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы воркеры не заблокировались
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
