package taskqueue

import "time"

// gateState is the snapshot of queue bookkeeping a StartPolicy may consult.
type gateState struct {
	running    int
	lastStart  time.Time
	started    bool
	timerArmed bool
}

// decision is a policy's verdict on the queued head task. start requests an
// immediate start. retryAfter > 0 asks the queue to arm a one-shot timer and
// re-attempt then. A decision with neither defers silently; the next
// submission or settlement re-attempts.
type decision struct {
	start      bool
	retryAfter time.Duration
}

// StartPolicy decides whether the head of the queue may start now, and if
// not, when to retry.
type StartPolicy func(now time.Time, state gateState) decision

// startAlways passes unconditionally.
func startAlways() StartPolicy {
	return func(time.Time, gateState) decision {
		return decision{start: true}
	}
}

// startLimited blocks while the running count has reached limit. Blocked
// tasks stay queued and are retried when a running job settles or a new
// submission arrives.
func startLimited(limit int) StartPolicy {
	return func(_ time.Time, state gateState) decision {
		if state.running < limit {
			return decision{start: true}
		}
		return decision{}
	}
}

// startSpaced enforces a minimum interval between successive starts. The
// first-ever start passes immediately. While a retry timer is armed the
// policy defers silently to avoid duplicate timers; otherwise it either
// passes or asks for a timer covering the remaining wait.
func startSpaced(interval time.Duration) StartPolicy {
	return func(now time.Time, state gateState) decision {
		if !state.started {
			return decision{start: true}
		}
		if state.timerArmed {
			return decision{}
		}
		if elapsed := now.Sub(state.lastStart); elapsed < interval {
			return decision{retryAfter: interval - elapsed}
		}
		return decision{start: true}
	}
}

// composePolicies chains policies into a pipeline: each is consulted in
// order and the first one to withhold the start wins.
func composePolicies(policies ...StartPolicy) StartPolicy {
	return func(now time.Time, state gateState) decision {
		for _, policy := range policies {
			if d := policy(now, state); !d.start {
				return d
			}
		}
		return decision{start: true}
	}
}
