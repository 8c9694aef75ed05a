package bus

import (
	"context"

	"github.com/openmcp/openmcp-backend/internal/realtime"
)

// Bus carries resource-change events between process instances so a
// mutation on one instance reaches sessions attached to another.
type Bus interface {
	Publish(ctx context.Context, change realtime.ResourceChange) error
	StartForwarder(ctx context.Context, onChange func(c realtime.ResourceChange)) error
	Close() error
}
