package websocket

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/qcar/dispatch/internal/pkg/fanout"
	"github.com/qcar/dispatch/internal/pkg/logger"
	"github.com/qcar/dispatch/internal/pkg/middleware"
	"github.com/qcar/dispatch/internal/pkg/models"
	"github.com/qcar/dispatch/internal/utils"
	"github.com/qcar/dispatch/services/orders"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamHandler serves live order snapshots over a websocket. Each
// message is the full current order state; the client keeps the newest
// UpdatedAt and discards the rest, so redelivery and reordering are
// harmless.
type StreamHandler struct {
	orderUC orders.OrderUC
	hub     *fanout.Hub
}

// NewStreamHandler creates the websocket stream handler
func NewStreamHandler(orderUC orders.OrderUC, hub *fanout.Hub) *StreamHandler {
	return &StreamHandler{orderUC: orderUC, hub: hub}
}

// StreamOrder handles GET /ws/orders/:id
func (h *StreamHandler) StreamOrder(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing authentication")
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "invalid order id")
	}

	// Subscribe before the initial read: a transition committed between
	// the read and the subscription would otherwise be in neither the
	// initial snapshot nor the stream. The newer-wins merge in the pump
	// absorbs any overlap between the two.
	sub := h.hub.Subscribe(orderID)
	defer sub.Close()

	// Authorize before upgrading: only the passenger or the assigned
	// driver may watch an order.
	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return utils.MapErrorResponse(c, err)
	}
	if callerID != order.PassengerID && (order.DriverID == nil || *order.DriverID != callerID) {
		return utils.UnauthorizedResponse(c, "not a participant of this order")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("order stream opened",
		logger.String("order_id", orderID.String()),
		logger.String("caller_id", callerID.String()))

	h.pump(conn, order.Snapshot(), sub)
	return nil
}

// pump writes the initial snapshot, then relays hub deliveries, keeping
// only snapshots strictly newer than the last one sent.
func (h *StreamHandler) pump(conn *websocket.Conn, initial models.OrderSnapshot, sub *fanout.Subscription) {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	last := initial
	if err := h.write(conn, last); err != nil {
		return
	}
	if !last.Order.IsActive() {
		h.closeNormal(conn)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-sub.C:
			if !ok {
				return
			}
			merged := fanout.ApplySnapshot(&last, snapshot)
			if !merged.UpdatedAt.After(last.UpdatedAt) {
				continue
			}
			last = merged
			if err := h.write(conn, last); err != nil {
				return
			}
			if !last.Order.IsActive() {
				// Terminal snapshot delivered; nothing further will come.
				h.closeNormal(conn)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func (h *StreamHandler) closeNormal(conn *websocket.Conn) {
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "order closed"),
		time.Now().Add(writeWait))
}

func (h *StreamHandler) write(conn *websocket.Conn, snapshot models.OrderSnapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(snapshot)
}
