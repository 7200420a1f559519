package models

import (
	"sync"
	"time"
)

// View is one mounted chart view. It owns its counter for as long as it is mounted, there is no sharing between
// views, so two browser tabs each get their own counter.
type View struct {
	id        string
	mountedAt time.Time

	mu         sync.Mutex
	counter    Counter
	streams    int
	detachedAt time.Time
}

func NewView(id string, mountedAt time.Time) *View {
	return &View{
		id:        id,
		mountedAt: mountedAt,
		counter:   NewCounter(),
	}
}

func (v *View) ID() string {
	return v.id
}

func (v *View) MountedAt() time.Time {
	return v.mountedAt
}

func (v *View) Value() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.counter.Value()
}

// Increment bumps the counter and returns the value it now holds.
func (v *View) Increment() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.counter.Increment()
	return v.counter.Value()
}

// Decrement lowers the counter and returns the value it now holds.
func (v *View) Decrement() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.counter.Decrement()
	return v.counter.Value()
}

// Attach records a live update stream. A view may carry several at once, for example while the browser replaces a
// dropped stream before the server has noticed the old one closed.
func (v *View) Attach() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.streams++
}

// Detach releases a stream taken by Attach. The view stays mounted so the browser can reconnect.
func (v *View) Detach(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.streams == 0 {
		return
	}
	v.streams--
	if v.streams == 0 {
		v.detachedAt = now
	}
}

func (v *View) Attached() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.streams > 0
}

// IdleSince is the time the view last had no stream: its mount time, or the last detach.
// The second return is false while a stream is attached.
func (v *View) IdleSince() (time.Time, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.streams > 0 {
		return time.Time{}, false
	}
	if v.detachedAt.After(v.mountedAt) {
		return v.detachedAt, true
	}
	return v.mountedAt, true
}
