package bus

import (
	"context"

	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/realtime"
)

// Notifier routes change events through the bus when one is configured,
// falling back to direct local fan-out. With a bus present the local
// hub is fed by the forwarder, so published events are not delivered
// twice on the publishing instance.
type Notifier struct {
	log *logger.Logger
	hub *realtime.Hub
	bus Bus
}

func NewNotifier(log *logger.Logger, hub *realtime.Hub, b Bus) *Notifier {
	return &Notifier{
		log: log.With("component", "ChangeNotifier"),
		hub: hub,
		bus: b,
	}
}

func (n *Notifier) NotifyResourceUpdated(ctx context.Context, uri string) {
	if n.bus != nil {
		err := n.bus.Publish(ctx, realtime.ResourceChange{URI: uri})
		if err == nil {
			return
		}
		n.log.Warn("Bus publish failed, delivering locally", "uri", uri, "error", err)
	}
	n.hub.NotifyResourceUpdated(ctx, uri)
}
