// Package ratelimit guards an external API behind a daily call budget and a
// minimum spacing between calls. State lives in process memory only; a
// restart starts a fresh day.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"stylehunt/pkg/logger"
)

// Stats is a read-only snapshot of a limiter.
type Stats struct {
	CallsToday int  `json:"calls_today"`
	DailyLimit int  `json:"daily_limit"`
	CanCall    bool `json:"can_call"`
}

// Limiter throttles calls to one platform. Safe for concurrent use.
type Limiter struct {
	mu          sync.Mutex
	lastCall    time.Time
	callsToday  int
	dailyLimit  int
	minInterval time.Duration
	dailyReset  time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a limiter allowing dailyLimit calls per day spaced at least
// minInterval apart.
func New(dailyLimit int, minInterval time.Duration) *Limiter {
	l := &Limiter{
		dailyLimit:  dailyLimit,
		minInterval: minInterval,
		now:         time.Now,
		sleep:       sleepCtx,
	}
	l.dailyReset = l.now()
	return l
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// maybeResetDay rolls the daily counter once more than 24h has passed since
// the stored reset mark. There is no background timer; the check is lazy,
// evaluated whenever the limiter is consulted. Callers must hold mu.
func (l *Limiter) maybeResetDay() {
	if l.now().Sub(l.dailyReset) > 24*time.Hour {
		l.callsToday = 0
		l.dailyReset = l.now()
	}
}

// CanMakeCall reports whether the caller may place an API call right now.
// A false return means the daily budget is spent. When only the spacing
// rule is violated, CanMakeCall waits out the remaining interval (honouring
// ctx cancellation) and then returns true, so it throttles rather than
// refuses. Pair every true return that leads to an actual call with one
// RecordCall.
func (l *Limiter) CanMakeCall(ctx context.Context) bool {
	l.mu.Lock()
	l.maybeResetDay()

	if l.callsToday >= l.dailyLimit {
		l.mu.Unlock()
		return false
	}

	wait := l.minInterval - l.now().Sub(l.lastCall)
	l.mu.Unlock()

	if wait > 0 {
		logger.Dedup("Rate limiter: waiting %s before next call", wait.Round(time.Millisecond))
		if err := l.sleep(ctx, wait); err != nil {
			return false
		}
	}
	return true
}

// RecordCall registers one outbound API call. Call it exactly once per call
// actually placed, never for calls skipped after CanMakeCall returned false.
func (l *Limiter) RecordCall() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.maybeResetDay()
	l.callsToday++
	l.lastCall = l.now()
}

// GetStats returns a snapshot without side effects on the counters. A day
// boundary that has passed but not yet been applied by CanMakeCall is still
// reflected in the numbers.
func (l *Limiter) GetStats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	calls := l.callsToday
	if l.now().Sub(l.dailyReset) > 24*time.Hour {
		calls = 0
	}
	return Stats{
		CallsToday: calls,
		DailyLimit: l.dailyLimit,
		CanCall:    calls < l.dailyLimit,
	}
}

// Reset clears all counters. Test hook; production code never calls it.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callsToday = 0
	l.lastCall = time.Time{}
	l.dailyReset = l.now()
}
