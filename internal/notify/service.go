package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/sparemart/sparemart/internal/identity"
	kafkax "github.com/sparemart/sparemart/internal/kafka"
	"github.com/sparemart/sparemart/internal/orders"
	"github.com/sparemart/sparemart/internal/redisx"
)

// Service turns order.cancelled events into buyer notifications. Installed
// as the consumer handler in cmd/notifier.
type Service struct {
	Notifier    Notifier
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderCancelled notifies the buyer when staff cancelled their order.
// Buyer-initiated cancellations are skipped; the buyer did it themselves.
func (s *Service) HandleOrderCancelled(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCancelled {
		return nil
	}

	// Dedup on event_id: redelivery after a rebalance must not write the
	// notification twice.
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCancelledPayload](env.Payload)
	if err != nil {
		return err
	}
	if p.CancelledBy == string(identity.RoleBuyer) {
		return nil
	}

	msg := fmt.Sprintf("Your order %s was cancelled by support: %s", p.OrderID, p.Reason)
	if err := s.Notifier.Notify(ctx, p.BuyerID, msg, SeverityWarning); err != nil {
		return err
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	return nil
}
