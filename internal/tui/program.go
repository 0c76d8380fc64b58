package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"dcrhub/internal/models"
)

// Bridge forwards renders to a running program. Sends never block: messages
// are queued and delivered in order by one goroutine, so the synchronizer may
// render from inside Update. Renders sent before a program is attached are
// dropped.
type Bridge struct {
	program *tea.Program
	wake    chan struct{}
	done    chan struct{}
	queue   []tea.Msg
	mu      sync.Mutex
}

// Attach sets the program receiving renders and starts delivery.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	b.program = p
	b.wake = make(chan struct{}, 1)
	b.done = make(chan struct{})

	go b.pump(p, b.wake, b.done)
}

// Detach stops delivery and drops undelivered renders.
func (b *Bridge) Detach() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
}

// Render sends the result list to the program.
func (b *Bridge) Render(records []models.DisplayRecord, status string) {
	b.send(ResultsMsg{Records: records, Status: status})
}

// RenderError sends the failure message to the program.
func (b *Bridge) RenderError(message string) {
	b.send(ErrorMsg{Message: message})
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	if b.program == nil {
		b.mu.Unlock()

		return
	}

	b.queue = append(b.queue, msg)
	wake := b.wake
	b.mu.Unlock()

	select {
	case wake <- struct{}{}:
	default:
	}
}

func (b *Bridge) pump(p *tea.Program, wake, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-wake:
		}

		for {
			b.mu.Lock()
			if b.done != done || len(b.queue) == 0 {
				b.mu.Unlock()

				break
			}

			msg := b.queue[0]
			b.queue = b.queue[1:]
			b.mu.Unlock()

			p.Send(msg)
		}
	}
}

func (b *Bridge) stopLocked() {
	if b.done != nil {
		close(b.done)
	}

	b.program = nil
	b.wake = nil
	b.done = nil
	b.queue = nil
}

// Run seeds the controller, then starts the browser on the alternate screen
// and blocks until it exits.
func Run(ctx context.Context, bridge *Bridge, ctrl Controller, pageURL string, initial models.FilterState, opts ...tea.ProgramOption) error {
	seeded, err := ctrl.Seed(pageURL, initial)
	if err != nil {
		return err
	}

	model := NewModel(ctx, ctrl, seeded)

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)

	bridge.Attach(p)
	defer bridge.Detach()

	_, err = p.Run()

	return err
}
