package command

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/threadnav/topic-browser/internal/logging/events"
	"github.com/threadnav/topic-browser/internal/retrieval"
)

// ResultMsg carries a finished retrieval back into the update loop.
type ResultMsg struct {
	Result retrieval.Result
}

// Runner executes one tagged retrieval request.
type Runner interface {
	Run(ctx context.Context, req retrieval.Request) retrieval.Result
}

// Bus turns retrieval requests into Bubble Tea commands while emitting
// trace logs around each round trip.
type Bus struct {
	ctx    context.Context
	runner Runner
}

// New initialises a command bus instance.
func New(ctx context.Context, runner Runner) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, runner: runner}
}

// Fetch wraps a retrieval request into a Bubble Tea command.
func (b *Bus) Fetch(mode string, req retrieval.Request) tea.Cmd {
	events.Retrieval.Request(mode, req.Generation, req.Page)
	return func() tea.Msg {
		res := b.runner.Run(b.ctx, req)
		if res.Err != nil {
			events.Retrieval.Error(res.Err)
		}
		return ResultMsg{Result: res}
	}
}
