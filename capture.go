package markup

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// Capture identifies one capture result: the raster handed to a
// document at construction. The identity is what provenance and the
// quick-access queue track; pixel data stays with the producing
// pipeline.
type Capture struct {
	// ID uniquely identifies the capture.
	ID uuid.UUID

	// Width and Height are the capture's pixel dimensions.
	Width  int
	Height int

	// CreatedAt is when the capture was taken.
	CreatedAt time.Time
}

// NewCapture derives a capture identity from an image.
func NewCapture(img image.Image) Capture {
	c := Capture{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
	if img != nil {
		b := img.Bounds()
		c.Width = b.Dx()
		c.Height = b.Dy()
	}
	return c
}

// CaptureQueue is a bounded FIFO of recent captures: pushing beyond
// capacity evicts the oldest entry. Like Document it is single-owner;
// callers serialize access.
type CaptureQueue struct {
	capacity int
	items    []Capture
}

// NewCaptureQueue creates a queue holding at most capacity captures.
// Capacities below 1 are raised to 1.
func NewCaptureQueue(capacity int) *CaptureQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &CaptureQueue{capacity: capacity}
}

// Push appends c, evicting the oldest capture when full.
func (q *CaptureQueue) Push(c Capture) {
	if len(q.items) == q.capacity {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, c)
}

// Latest returns the most recently pushed capture.
func (q *CaptureQueue) Latest() (Capture, bool) {
	if len(q.items) == 0 {
		return Capture{}, false
	}
	return q.items[len(q.items)-1], true
}

// Items returns the captures newest first.
func (q *CaptureQueue) Items() []Capture {
	out := make([]Capture, len(q.items))
	for i, c := range q.items {
		out[len(q.items)-1-i] = c
	}
	return out
}

// Len returns the number of queued captures.
func (q *CaptureQueue) Len() int {
	return len(q.items)
}

// Capacity returns the maximum number of queued captures.
func (q *CaptureQueue) Capacity() int {
	return q.capacity
}
