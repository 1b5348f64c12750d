package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/event-server/internal/api/metrics"
	"github.com/eventhub/event-server/internal/core/ports"
	"github.com/eventhub/event-server/internal/notify"
)

// Notifier is the interface the handler uses to hand off realtime fan-out.
type Notifier interface {
	Enqueue(n notify.Notification)
}

// EventHandler handles event creation and listing.
type EventHandler struct {
	events   ports.EventService
	notifier Notifier
}

func NewEventHandler(events ports.EventService, notifier Notifier) *EventHandler {
	return &EventHandler{events: events, notifier: notifier}
}

// Create handles POST /events — stores the event and announces it to all
// realtime clients.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      200   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.events.Create(c.Request().Context(), toEventInput(req), userID, role)
	if err != nil {
		return err
	}

	metrics.EventsCreatedTotal.WithLabelValues(strconv.FormatBool(event.Approved)).Inc()
	h.notifier.Enqueue(notify.Notification{Event: event, Action: notify.ActionCreated})

	return c.JSON(http.StatusOK, event)
}

// List handles GET /events — returns the events visible to the requester:
// approved ones plus the requester's own submissions, in creation order.
//
// @Summary      List visible events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  map[string]string
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	events, err := h.events.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// ListAll handles GET /admin/events — the full unfiltered list. Routed behind
// RBAC(ADMIN); read-only, so the per-requester visibility rule on GET /events
// is untouched.
//
// @Summary      List all events (admin)
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/events [get]
func (h *EventHandler) ListAll(c echo.Context) error {
	events, err := h.events.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
