package core

import "time"

// Pacer releases simulation days at a steady rate from a frame or poll loop.
// At most one day is owed at any time, so a stalled loop does not replay a
// burst of days when it resumes.
type Pacer struct {
	interval time.Duration
	owed     time.Duration
	last     time.Time

	now func() time.Time
}

// NewPacer returns a pacer releasing perSecond days per second. The first
// call to Due reports true.
func NewPacer(perSecond int) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetRate(perSecond)
	p.owed = p.interval
	return p
}

// SetRate changes the number of days released per second. Non-positive rates
// fall back to one.
func (p *Pacer) SetRate(perSecond int) {
	p.interval = time.Second / time.Duration(max(perSecond, 1))
}

// Interval returns the time between two days.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Reset forgets elapsed time, e.g. after a pause.
func (p *Pacer) Reset() {
	p.owed = 0
	p.last = p.now()
}

// Due reports whether the next day should run now.
func (p *Pacer) Due() bool {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.owed = min(p.owed+now.Sub(p.last), p.interval)
	p.last = now
	if p.owed >= p.interval {
		p.owed = 0
		return true
	}
	return false
}
