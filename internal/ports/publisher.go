package ports

import (
	"context"

	"lebdeal/internal/app"
)

// Publisher fans accepted-action events out to observers. Delivery
// guarantees and subscriptions are the transport layer's concern.
type Publisher interface {
	Publish(ctx context.Context, tableID string, events []app.Event) error
}
