package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Worker is a long-running loop owned by the application, such as an event consumer.
type Worker interface {
	Start(ctx context.Context) error
	Closer
}

type Closer interface {
	Close() error
}
