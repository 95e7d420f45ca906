package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/sparemart/sparemart/internal/catalog"
	"github.com/sparemart/sparemart/internal/identity"
	kafkax "github.com/sparemart/sparemart/internal/kafka"
	"github.com/sparemart/sparemart/internal/orders"
	"github.com/sparemart/sparemart/internal/redisx"
)

type OrdersHandler struct {
	Repo              *orders.Repo
	Catalog           *catalog.Repo
	Redis             *redis.Client
	PlacedProducer    *kafkax.Producer
	CancelledProducer *kafkax.Producer
	Service           string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/checkout", h.checkout)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders/{id}/status", h.getStatus)
	r.Get("/orders/{id}/history", h.getHistory)
	r.Get("/orders/{id}/sellers", h.getSellerBreakdown)
	r.Post("/orders/{id}/status", h.transition)
	r.Post("/orders/{id}/cancel", h.cancel)
	r.Get("/parts", h.listParts)
}

type checkoutReq struct {
	Shipping orders.ShippingDetails `json:"shipping"`
}

type checkoutResp struct {
	OrderID     string        `json:"order_id"`
	TotalAmount int64         `json:"total_amount"`
	Status      orders.Status `json:"status"`
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Per-buyer in-flight guard: a double-submitted checkout form must not
	// produce two orders from the same cart state.
	lockKey := fmt.Sprintf(redisx.KeyCheckoutInFlight, actor.UserID)
	locked, err := h.Redis.SetNX(ctx, lockKey, "1", redisx.TTLCheckoutLock).Result()
	if err == nil && !locked {
		writeErr(w, orders.ErrCheckoutInFlight)
		return
	}
	defer h.Redis.Del(context.Background(), lockKey)

	o, err := h.Repo.Checkout(ctx, actor.UserID, req.Shipping)
	if err != nil {
		writeErr(w, err)
		return
	}

	h.cacheStatus(ctx, o.ID, o.Status)
	h.publish(h.PlacedProducer, orders.EventOrderPlaced, o.ID, r.Header.Get("X-Request-Id"),
		orders.OrderPlacedPayload{
			OrderID:     o.ID,
			BuyerID:     o.BuyerID,
			TotalAmount: o.TotalAmount,
		})

	writeJSON(w, http.StatusCreated, checkoutResp{OrderID: o.ID, TotalAmount: o.TotalAmount, Status: o.Status})
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.ListByBuyer(ctx, actor.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": list})
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if o.BuyerID != actor.UserID && !actor.Staff() {
		writeErr(w, orders.ErrNotOrderOwner)
		return
	}
	items, err := h.Repo.ListItems(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": o, "items": items})
}

// getStatus serves the polling-friendly status read: Redis first, database
// on a miss (and refill the cache). The cache fast path is staff-only;
// buyers go through the order row so ownership is checked.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if actor.Staff() {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	o, err := h.Repo.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if o.BuyerID != actor.UserID && !actor.Staff() {
		writeErr(w, orders.ErrNotOrderOwner)
		return
	}
	h.cacheStatus(ctx, o.ID, o.Status)
	writeJSON(w, http.StatusOK, map[string]orders.Status{"status": o.Status})
}

func (h *OrdersHandler) getHistory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if o.BuyerID != actor.UserID && !actor.Staff() {
		writeErr(w, orders.ErrNotOrderOwner)
		return
	}
	hist, err := h.Repo.History(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": hist})
}

func (h *OrdersHandler) getSellerBreakdown(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	if o.BuyerID != actor.UserID && !actor.Staff() {
		writeErr(w, orders.ErrNotOrderOwner)
		return
	}
	groups, err := h.Repo.SellerBreakdown(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sellers":     groups,
		"items_total": orders.ItemsTotal(groups),
	})
}

type transitionReq struct {
	Status orders.Status `json:"status"`
	Notes  string        `json:"notes"`
}

func (h *OrdersHandler) transition(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}
	if !actor.Staff() {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "staff role required"})
		return
	}
	orderID := chi.URLParam(r, "id")
	var req transitionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Repo.Transition(ctx, orderID, req.Status, actor, req.Notes)
	if err != nil {
		writeErr(w, err)
		return
	}
	h.cacheStatus(ctx, o.ID, o.Status)
	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *OrdersHandler) cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}
	orderID := chi.URLParam(r, "id")
	var req cancelReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		o   orders.Order
		err error
	)
	if actor.Staff() {
		o, err = h.Repo.CancelByStaff(ctx, orderID, actor, req.Reason)
	} else {
		o, err = h.Repo.CancelByBuyer(ctx, orderID, actor.UserID)
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	h.cacheStatus(ctx, o.ID, o.Status)
	cancelledBy := string(identity.RoleBuyer)
	if actor.Staff() {
		cancelledBy = string(actor.Roles.StaffRole())
	}
	h.publish(h.CancelledProducer, orders.EventOrderCancelled, o.ID, r.Header.Get("X-Request-Id"),
		orders.OrderCancelledPayload{
			OrderID:     o.ID,
			BuyerID:     o.BuyerID,
			CancelledBy: cancelledBy,
			Reason:      req.Reason,
		})

	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}

func (h *OrdersHandler) listParts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Catalog.ListActive(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parts": ps})
}

// cacheStatus keeps the hot order-status read path off the database.
func (h *OrdersHandler) cacheStatus(ctx context.Context, orderID string, s orders.Status) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	b, _ := json.Marshal(map[string]orders.Status{"status": s})
	_ = h.Redis.Set(ctx, key, b, redisx.TTLStatusCache).Err()
}

func (h *OrdersHandler) publish(p *kafkax.Producer, eventType, orderID, traceID string, payload any) {
	if p == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	p.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
