// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a serving transport. Serve blocks until the transport stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
