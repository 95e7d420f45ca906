package redisx

import "time"

const (
	// Per-buyer checkout guard: checkout:inflight:{buyer_id} -> 1.
	// Held only while a checkout transaction runs; suppresses
	// double-submitted checkout forms.
	KeyCheckoutInFlight = "checkout:inflight:%s"

	// Cache of an order's current status: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup for event consumers: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLCheckoutLock = 30 * time.Second
	TTLStatusCache  = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
)
