package batch

import "context"

// Failure records why one item failed.
type Failure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Result is the per-item breakdown of a batch. Both lists are always non-nil
// so they encode as [] rather than null.
type Result[T any] struct {
	Success []T       `json:"success"`
	Failed  []Failure `json:"failed"`
}

// Process calls fn for each id in order. Every id is attempted; fn sees ctx
// and reports cancellation as its own error.
func Process[T any](ctx context.Context, ids []string, fn func(ctx context.Context, id string) (T, error)) Result[T] {
	res := Result[T]{
		Success: make([]T, 0, len(ids)),
		Failed:  make([]Failure, 0),
	}

	for _, id := range ids {
		v, err := fn(ctx, id)
		if err != nil {
			res.Failed = append(res.Failed, Failure{ID: id, Error: err.Error()})
			continue
		}
		res.Success = append(res.Success, v)
	}

	return res
}
