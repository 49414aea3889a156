package app

import "time"

// frameLimiter paces the loop to a fixed frame rate.
type frameLimiter struct {
	period time.Duration
	next   time.Time
}

// newFrameLimiter returns a limiter for fps frames per second; 0 disables it.
func newFrameLimiter(fps int) *frameLimiter {
	l := &frameLimiter{}
	if fps > 0 {
		l.period = time.Second / time.Duration(fps)
	}
	return l
}

// wait returns how long to sleep at now before starting the next frame.
// A frame that overran resynchronizes instead of bursting to catch up.
func (l *frameLimiter) wait(now time.Time) time.Duration {
	if l.period == 0 {
		return 0
	}
	if l.next.IsZero() || now.Sub(l.next) > l.period {
		l.next = now.Add(l.period)
		return 0
	}
	d := l.next.Sub(now)
	l.next = l.next.Add(l.period)
	if d < 0 {
		return 0
	}
	return d
}
