// Package seq provides strictly sequential iteration helpers over ordered
// slices. Callbacks run one element at a time in index order; the callback
// for index i+1 is never invoked before the callback for index i has
// returned. This makes the helpers safe for callbacks that mutate shared
// external state (filesystem writes, counters) or that must respect
// backpressure from an underlying resource.
package seq

import (
	"context"
	"errors"
)

// ErrNilCallback is returned when a helper is invoked without a callback.
var ErrNilCallback = errors.New("seq: callback is required")

// ForEach invokes fn for every element of items in index order, discarding
// results. The first error short-circuits the remaining elements. Context
// cancellation is observed before each element.
func ForEach[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T, index int) error) error {
	if fn == nil {
		return ErrNilCallback
	}
	for i, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := fn(ctx, item, i); err != nil {
			return err
		}
	}
	return nil
}

// Map invokes fn for every element of items in index order and collects each
// result at its original index. The first error aborts the iteration and the
// partial results are discarded.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T, index int) (R, error)) ([]R, error) {
	if fn == nil {
		return nil, ErrNilCallback
	}
	results := make([]R, len(items))
	for i, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		mapped, err := fn(ctx, item, i)
		if err != nil {
			return nil, err
		}
		results[i] = mapped
	}
	return results, nil
}

// Reduce threads an accumulator through fn for every element of items in
// index order, starting from initial. The first error aborts the iteration
// and returns the zero accumulator.
func Reduce[T, A any](ctx context.Context, items []T, initial A, fn func(ctx context.Context, acc A, item T, index int) (A, error)) (A, error) {
	var zero A
	if fn == nil {
		return zero, ErrNilCallback
	}
	acc := initial
	for i, item := range items {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}
		next, err := fn(ctx, acc, item, i)
		if err != nil {
			return zero, err
		}
		acc = next
	}
	return acc, nil
}

// Find returns the first element of items whose predicate reports true,
// walking in index order. The boolean result is false when no element
// matches. The first predicate error aborts the iteration.
func Find[T any](ctx context.Context, items []T, pred func(ctx context.Context, item T, index int) (bool, error)) (T, bool, error) {
	var zero T
	if pred == nil {
		return zero, false, ErrNilCallback
	}
	for i, item := range items {
		select {
		case <-ctx.Done():
			return zero, false, ctx.Err()
		default:
		}
		ok, err := pred(ctx, item, i)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return item, true, nil
		}
	}
	return zero, false, nil
}
