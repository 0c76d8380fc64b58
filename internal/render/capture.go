package render

import (
	"sync"

	"dcrhub/internal/models"
)

// Surface is anything that can show a result list or a failure message.
type Surface interface {
	Render(records []models.DisplayRecord, status string)
	RenderError(message string)
}

// Capture is a surface that keeps only the latest frame, for one-shot output.
type Capture struct {
	status  string
	message string
	records []models.DisplayRecord
	frames  int
	isError bool
	mu      sync.Mutex
}

// Render keeps the result list.
func (c *Capture) Render(records []models.DisplayRecord, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records, c.status, c.isError = records, status, false
	c.frames++
}

// RenderError keeps the failure message.
func (c *Capture) RenderError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.message, c.isError = message, true
	c.frames++
}

// Records returns the latest result list.
func (c *Capture) Records() []models.DisplayRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.records
}

// Frames reports how many renders were received.
func (c *Capture) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.frames
}

// Replay sends the latest frame to s. Nothing is sent before the first render.
func (c *Capture) Replay(s Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.frames == 0:
	case c.isError:
		s.RenderError(c.message)
	default:
		s.Render(c.records, c.status)
	}
}
