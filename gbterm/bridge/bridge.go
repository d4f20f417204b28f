// Package bridge hands frames from the driver goroutine to the UI goroutine.
package bridge

import (
	"errors"
	"sync/atomic"

	"github.com/valerio/gbterm/gbterm/mailbox"
	"github.com/valerio/gbterm/gbterm/video"
)

// Scheduler runs work on the UI goroutine. Work items run one at a time in
// submission order; Schedule itself must not wait for them to run.
type Scheduler interface {
	Schedule(work func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(work func())

func (f SchedulerFunc) Schedule(work func()) { f(work) }

// Presenter draws a frame. It is only ever called on the UI goroutine.
type Presenter func(frame *video.Frame)

var (
	ErrNoScheduler = errors.New("bridge: nil scheduler")
	ErrNoPresenter = errors.New("bridge: nil presenter")
)

// Stats counts frames passing through the bridge.
type Stats struct {
	Delivered uint64 // frames handed over by the driver
	Dropped   uint64 // frames overwritten before the UI took them
	Presented uint64 // frames drawn by the UI
}

// Bridge owns the pending-frame mailbox. Deliver is called by the driver;
// the scheduled work item takes the newest frame on the UI goroutine, so a
// frame is only ever touched by one side at a time.
//
// At most one work item is outstanding. A frame delivered while one is
// queued simply replaces the pending frame and is picked up by that item.
type Bridge struct {
	frames    *mailbox.Mailbox[*video.Frame]
	scheduler Scheduler
	present   Presenter

	queued atomic.Bool

	delivered atomic.Uint64
	dropped   atomic.Uint64
	presented atomic.Uint64
}

func New(scheduler Scheduler, present Presenter) (*Bridge, error) {
	if scheduler == nil {
		return nil, ErrNoScheduler
	}
	if present == nil {
		return nil, ErrNoPresenter
	}
	return &Bridge{
		frames:    mailbox.New[*video.Frame](),
		scheduler: scheduler,
		present:   present,
	}, nil
}

// Deliver deposits frame, replacing any undisplayed one, and makes sure a
// work item is queued to present it. It never blocks on the UI.
func (b *Bridge) Deliver(frame *video.Frame) {
	b.delivered.Add(1)
	if b.frames.Put(frame) {
		b.dropped.Add(1)
	}

	if b.queued.CompareAndSwap(false, true) {
		b.scheduler.Schedule(b.run)
	}
}

// run executes on the UI goroutine.
func (b *Bridge) run() {
	// clear before taking: a frame deposited after the take queues a new item
	b.queued.Store(false)

	frame, ok := b.frames.Take()
	if !ok {
		return
	}
	b.presented.Add(1)
	b.present(frame)
}

// Take removes the pending frame without presenting it.
func (b *Bridge) Take() (*video.Frame, bool) {
	return b.frames.Take()
}

func (b *Bridge) Stats() Stats {
	return Stats{
		Delivered: b.delivered.Load(),
		Dropped:   b.dropped.Load(),
		Presented: b.presented.Load(),
	}
}
