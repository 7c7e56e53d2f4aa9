package registry

import (
	"context"

	"github.com/mergington/activities/internal/domain/journal"
)

// Journal receives roster changes after they have been applied, one at a
// time and in the order they were applied.
type Journal interface {
	Record(ctx context.Context, entry *journal.Entry) error
}

// Observer is notified of every operation and of roster size changes.
// ObserveRoster runs under the registry lock and must not call back into
// the Service.
type Observer interface {
	ObserveOperation(op Operation, err error)
	ObserveRoster(activity string, participants int)
}
