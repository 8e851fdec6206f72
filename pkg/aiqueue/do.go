package aiqueue

import (
	"context"

	"github.com/shopsight-hq/shopsight/pkg/logger"
)

// Do submits fn to the queue and blocks until its outcome is delivered. On
// success the result and true are returned; every failure path yields the
// zero value and false, so callers need no error handling of their own.
func Do[T any](ctx context.Context, q *Queue, feature logger.Feature, fn func(ctx context.Context) (T, error)) (T, bool) {
	var result T
	out := <-q.Submit(ctx, feature, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if !out.OK {
		var zero T
		return zero, false
	}
	return result, true
}
