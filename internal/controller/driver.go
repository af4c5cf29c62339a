package controller

import "context"

// Driver runs actions to completion synchronously: every effect is executed
// in order and its result reduced before Dispatch returns. Scriptable
// commands use it; the TUI runs effects asynchronously instead.
type Driver struct {
	Deps Deps
}

func (d Driver) Dispatch(ctx context.Context, s State, a Action) State {
	queue := []Action{a}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var effects []Effect
		s, effects = Reduce(s, next)
		for _, e := range effects {
			if r := Execute(ctx, d.Deps, e); r != nil {
				queue = append(queue, r)
			}
		}
	}
	return s
}
