package health

import "context"

// StorePinger checks the text-cache backend is reachable.
type StorePinger interface {
	Ping(ctx context.Context) error
}
