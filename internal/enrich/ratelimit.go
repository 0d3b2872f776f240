package enrich

import "time"

// RateLimiter enforces a minimum wall-clock interval between calls to the
// external classifier. It is a single global gate with a cooperative
// blocking wait, matching the sequential pipeline: the caller sleeps, not a
// scheduler.
type RateLimiter struct {
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter builds a limiter with the given minimum interval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned. The first call never blocks.
func (r *RateLimiter) Wait() {
	if !r.last.IsZero() {
		if elapsed := r.now().Sub(r.last); elapsed < r.interval {
			r.sleep(r.interval - elapsed)
		}
	}
	r.last = r.now()
}
