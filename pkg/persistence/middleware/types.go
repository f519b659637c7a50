package middleware

import "github.com/aretw0/cadence/pkg/ports"

// Middleware allows wrapping a SchedulePersister to add behavior.
type Middleware func(ports.SchedulePersister) ports.SchedulePersister

// Chain applies middlewares so that the first one sees the model first.
func Chain(next ports.SchedulePersister, mws ...Middleware) ports.SchedulePersister {
	for i := len(mws) - 1; i >= 0; i-- {
		next = mws[i](next)
	}
	return next
}
