// Package clock keeps the pedal's real-time clock and corrects it from an
// NTP server.
package clock

import (
	"sync"
	"time"
)

// RTC is a settable real-time clock
type RTC interface {
	Now() time.Time
	Adjust(t time.Time)
}

// SoftRTC is an RTC that runs at host speed with its own offset, standing in
// for a battery-backed clock module.
type SoftRTC struct {
	mu     sync.Mutex
	offset time.Duration
	loc    *time.Location
	host   func() time.Time
}

// NewSoftRTC returns a clock reporting host time in loc
func NewSoftRTC(loc *time.Location) *SoftRTC {
	if loc == nil {
		loc = time.Local
	}
	return &SoftRTC{loc: loc, host: time.Now}
}

// Now returns the clock's current time
func (r *SoftRTC) Now() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.host().Add(r.offset).In(r.loc)
}

// Adjust sets the clock to t
func (r *SoftRTC) Adjust(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offset = t.Sub(r.host())
}

// Offset returns how far the clock is from host time
func (r *SoftRTC) Offset() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offset
}
