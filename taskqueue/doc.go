// Package taskqueue runs asynchronous jobs from a FIFO queue under optional
// throttling policies: a concurrency limit (at most N jobs in flight) and a
// minimum wall-clock interval between successive job starts. The two
// policies compose; the interval gate is evaluated before the concurrency
// gate. Each submitted job gets a promise-shaped Handle that settles exactly
// once with the job's own outcome. The queue itself never errors.
package taskqueue
