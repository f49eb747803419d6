// Package delivery defines the contract every transport adapter implements.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application core.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
