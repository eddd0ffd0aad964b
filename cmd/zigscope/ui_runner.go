package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"zigscope/internal/driver"
	"zigscope/internal/pipeline"
	"zigscope/internal/source"
	"zigscope/internal/ui"
)

type analyzeOutcome struct {
	fs      *source.FileSet
	results []*driver.AnalyzeResult
	err     error
}

// analyzeDirWithUI runs AnalyzeDir in the background and renders its events
// until the channel closes.
func analyzeDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*source.FileSet, []*driver.AnalyzeResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.Tee(opts.Progress, pipeline.ChannelSink{Ch: events})
		fs, results, err := driver.AnalyzeDir(ctx, dir, optsCopy)
		outcomeCh <- analyzeOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
