// Package pipeline runs ordered request steps that share one mutable
// context and stop at the first failure.
package pipeline

// Step inspects or updates the shared context. A non-nil error stops the
// chain.
type Step[T any] func(ctx *T) error

type Chain[T any] struct {
	steps []Step[T]
}

func New[T any](steps ...Step[T]) Chain[T] {
	return Chain[T]{steps: append([]Step[T](nil), steps...)}
}

// Then returns a new chain with steps appended; ch is left untouched.
func (ch Chain[T]) Then(steps ...Step[T]) Chain[T] {
	out := make([]Step[T], 0, len(ch.steps)+len(steps))
	out = append(out, ch.steps...)
	out = append(out, steps...)
	return Chain[T]{steps: out}
}

// Run executes the steps in order and returns the first error.
func (ch Chain[T]) Run(ctx *T) error {
	for _, step := range ch.steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
