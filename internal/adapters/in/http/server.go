package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Use case ports of the HTTP adapter. The command and query handlers satisfy them.
type (
	CreateOrder interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.OrderID, error)
	}
	ClaimOrder interface {
		Handle(ctx context.Context, cmd commands.ClaimOrderCommand) error
	}
	CompleteOrder interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) error
	}
	ArchiveOrder interface {
		Handle(ctx context.Context, cmd commands.ArchiveOrderCommand) error
	}
	UnarchiveOrder interface {
		Handle(ctx context.Context, cmd commands.UnarchiveOrderCommand) error
	}
	CancelOrder interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
	}
	ListCreatorOrders interface {
		Handle(ctx context.Context, query queries.ListCreatorOrdersQuery) ([]queries.OrderView, error)
	}
	ListWorkerOrders interface {
		Handle(ctx context.Context, query queries.ListWorkerOrdersQuery) ([]queries.OrderView, error)
	}
	WhoAmI interface {
		Handle(ctx context.Context, query queries.WhoAmIQuery) (queries.WhoAmIQueryResponse, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateOrder       CreateOrder
	ClaimOrder        ClaimOrder
	CompleteOrder     CompleteOrder
	ArchiveOrder      ArchiveOrder
	UnarchiveOrder    UnarchiveOrder
	CancelOrder       CancelOrder
	ListCreatorOrders ListCreatorOrders
	ListWorkerOrders  ListWorkerOrders
	WhoAmI            WhoAmI
}

// Server handles the JSON API. The caller is identified by the telegram_id query parameter.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{handlers: handlers, logger: logger.With("component", "http")}
}

// GetMe handles GET /api/me.
func (s *Server) GetMe(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewWhoAmIQuery(caller)
	if err != nil {
		return s.fail(c, err)
	}
	me, err := s.handlers.WhoAmI.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, Me{TelegramID: me.ID.String(), Role: me.Role.String(), Name: me.Name})
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body NewOrder
	if err = c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	deadline, err := parseDeadline(body.Deadline)
	if err != nil {
		return s.fail(c, err)
	}

	items := make([]commands.LineItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.LineItemInput{Product: item.Product, Color: item.Color, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(caller, items, body.Urgent, deadline)
	if err != nil {
		return s.fail(c, err)
	}
	id, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: id.Int64()})
}

// ListCreatorOrders handles GET /api/orders.
func (s *Server) ListCreatorOrders(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var rawStatuses *[]string
	if err = runtime.BindQueryParameter("form", false, false, "status", c.QueryParams(), &rawStatuses); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("status", err))
	}
	var urgent *bool
	if err = runtime.BindQueryParameter("form", true, false, "urgent", c.QueryParams(), &urgent); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("urgent", err))
	}

	var statuses []order.Status
	if rawStatuses != nil {
		statuses = make([]order.Status, 0, len(*rawStatuses))
		for _, raw := range *rawStatuses {
			status, parseErr := order.ParseStatus(raw)
			if parseErr != nil {
				return s.fail(c, parseErr)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListCreatorOrdersQuery(caller, statuses, urgent != nil && *urgent)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.handlers.ListCreatorOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ordersFromViews(orders))
}

// ListWorkerOrders handles GET /api/worker/orders.
func (s *Server) ListWorkerOrders(c echo.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var tab *string
	if err = runtime.BindQueryParameter("form", true, false, "tab", c.QueryParams(), &tab); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("tab", err))
	}
	selected := queries.TabUrgent
	if tab != nil {
		selected = queries.WorkerTab(*tab)
	}

	query, err := queries.NewListWorkerOrdersQuery(caller, selected)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.handlers.ListWorkerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, ordersFromViews(orders))
}

// ClaimOrder handles POST /api/orders/{id}/claim.
func (s *Server) ClaimOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id kernel.OrderID, caller kernel.UserID) error {
		cmd, err := commands.NewClaimOrderCommand(id, caller)
		if err != nil {
			return err
		}
		return s.handlers.ClaimOrder.Handle(ctx, cmd)
	})
}

// CompleteOrder handles POST /api/orders/{id}/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id kernel.OrderID, caller kernel.UserID) error {
		cmd, err := commands.NewCompleteOrderCommand(id, caller)
		if err != nil {
			return err
		}
		return s.handlers.CompleteOrder.Handle(ctx, cmd)
	})
}

// ArchiveOrder handles POST /api/orders/{id}/archive.
func (s *Server) ArchiveOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id kernel.OrderID, caller kernel.UserID) error {
		cmd, err := commands.NewArchiveOrderCommand(id, caller)
		if err != nil {
			return err
		}
		return s.handlers.ArchiveOrder.Handle(ctx, cmd)
	})
}

// UnarchiveOrder handles POST /api/orders/{id}/unarchive.
func (s *Server) UnarchiveOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, id kernel.OrderID, caller kernel.UserID) error {
		cmd, err := commands.NewUnarchiveOrderCommand(id, caller)
		if err != nil {
			return err
		}
		return s.handlers.UnarchiveOrder.Handle(ctx, cmd)
	})
}

// CancelOrder handles POST /api/orders/{id}/cancel. The body with a reason is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	var body Cancel
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&body); err != nil {
			return s.fail(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
		}
	}

	return s.transition(c, func(ctx context.Context, id kernel.OrderID, caller kernel.UserID) error {
		cmd, err := commands.NewCancelOrderCommand(id, caller, body.Reason)
		if err != nil {
			return err
		}
		return s.handlers.CancelOrder.Handle(ctx, cmd)
	})
}

func (s *Server) transition(
	c echo.Context,
	apply func(ctx context.Context, id kernel.OrderID, caller kernel.UserID) error,
) error {
	caller, err := callerOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var rawID int64
	err = runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &rawID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("order id", err))
	}
	id := kernel.OrderID(rawID)
	if err = id.Validate(); err != nil {
		return s.fail(c, err)
	}

	if err = apply(c.Request().Context(), id, caller); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// fail writes err as a JSON error with the status matching its kind.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		message = http.StatusText(status)
	}
	return c.JSON(status, Error{Code: status, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func callerOf(c echo.Context) (kernel.UserID, error) {
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "telegram_id", c.QueryParams(), &raw); err != nil {
		return "", errs.NewValueIsRequiredErrorWithCause("telegram_id", err)
	}
	return kernel.NewUserID(raw)
}

// parseDeadline accepts a calendar date, read as midnight UTC, or an RFC 3339 timestamp.
func parseDeadline(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("deadline", fmt.Errorf("%q is neither a date nor an RFC 3339 timestamp", raw))
}
