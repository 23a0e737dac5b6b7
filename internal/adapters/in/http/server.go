package http

import (
	"log/slog"
	"net/http"

	"deliveryhub/internal/adapters/in/realtime"
	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/application/views"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/member"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Server implements servers.ServerInterface. Every handler checks the caller's role,
// runs one command or query and renders the result.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	claimOrderHandler         commands.ClaimOrderCommandHandler
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler

	// Query handlers
	getProductsHandler        queries.GetProductsQueryHandler
	getCustomerOrdersHandler  queries.GetCustomerOrdersQueryHandler
	getUnclaimedOrdersHandler queries.GetUnclaimedOrdersQueryHandler
	getAssignedOrdersHandler  queries.GetAssignedOrdersQueryHandler
	getAllOrdersHandler       queries.GetAllOrdersQueryHandler
	getMembersHandler         queries.GetMembersQueryHandler

	views  views.Builder
	events *realtime.Endpoint
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	ClaimOrder         commands.ClaimOrderCommandHandler
	AdvanceOrderStatus commands.AdvanceOrderStatusCommandHandler

	GetProducts        queries.GetProductsQueryHandler
	GetCustomerOrders  queries.GetCustomerOrdersQueryHandler
	GetUnclaimedOrders queries.GetUnclaimedOrdersQueryHandler
	GetAssignedOrders  queries.GetAssignedOrdersQueryHandler
	GetAllOrders       queries.GetAllOrdersQueryHandler
	GetMembers         queries.GetMembersQueryHandler
}

func NewServer(handlers Handlers, builder views.Builder, events *realtime.Endpoint, logger *slog.Logger) *Server {
	return &Server{
		createOrderHandler:        handlers.CreateOrder,
		claimOrderHandler:         handlers.ClaimOrder,
		advanceOrderStatusHandler: handlers.AdvanceOrderStatus,
		getProductsHandler:        handlers.GetProducts,
		getCustomerOrdersHandler:  handlers.GetCustomerOrders,
		getUnclaimedOrdersHandler: handlers.GetUnclaimedOrders,
		getAssignedOrdersHandler:  handlers.GetAssignedOrders,
		getAllOrdersHandler:       handlers.GetAllOrders,
		getMembersHandler:         handlers.GetMembers,
		views:                     builder,
		events:                    events,
		logger:                    logger.With("component", "http_server"),
	}
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	if _, err := requireRole(ctx); err != nil {
		return err
	}

	products, err := s.getProductsHandler.Handle(ctx.Request().Context(), queries.NewGetProductsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Product, 0, len(products))
	for _, p := range products {
		product, mapErr := toProduct(p)
		if mapErr != nil {
			return s.fail(ctx, mapErr)
		}
		response = append(response, product)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, err := requireRole(ctx, member.RoleCustomer)
	if err != nil {
		return err
	}

	var body servers.CreateOrderJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, line := range body.Items {
		productID, idErr := kernel.UUIDFromBytes(line.ProductId[:])
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		item, itemErr := order.NewItem(productID, line.Quantity)
		if itemErr != nil {
			return s.fail(ctx, itemErr)
		}
		items = append(items, item)
	}

	total, err := order.ParseTotal(body.Total)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), principal.ID, items, total)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusCreated, created)
}

// ListOrdersForCustomer handles GET /api/v1/orders/mine.
func (s *Server) ListOrdersForCustomer(ctx echo.Context) error {
	principal, err := requireRole(ctx, member.RoleCustomer)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCustomerOrdersQuery(principal.ID)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	return s.renderOrders(ctx, result, err)
}

// ListUnclaimedOrders handles GET /api/v1/orders/unclaimed.
func (s *Server) ListUnclaimedOrders(ctx echo.Context) error {
	if _, err := requireRole(ctx, member.RoleDelivery); err != nil {
		return err
	}

	result, err := s.getUnclaimedOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetUnclaimedOrdersQuery())
	return s.renderOrders(ctx, result, err)
}

// ListAssignedOrders handles GET /api/v1/orders/assigned.
func (s *Server) ListAssignedOrders(ctx echo.Context) error {
	principal, err := requireRole(ctx, member.RoleDelivery)
	if err != nil {
		return err
	}

	query, err := queries.NewGetAssignedOrdersQuery(principal.ID)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.getAssignedOrdersHandler.Handle(ctx.Request().Context(), query)
	return s.renderOrders(ctx, result, err)
}

// ClaimOrder handles POST /api/v1/orders/{orderId}/claim.
func (s *Server) ClaimOrder(ctx echo.Context, id servers.OrderId) error {
	principal, err := requireRole(ctx, member.RoleDelivery)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewClaimOrderCommand(orderID, principal.ID)
	if err != nil {
		return s.fail(ctx, err)
	}

	claimed, err := s.claimOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusOK, claimed)
}

// AdvanceOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, id servers.OrderId) error {
	principal, err := requireRole(ctx, member.RoleDelivery)
	if err != nil {
		return err
	}

	var body servers.AdvanceOrderStatusJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, principal.ID, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	advanced, err := s.advanceOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusOK, advanced)
}

// ListAllOrders handles GET /api/v1/admin/orders.
func (s *Server) ListAllOrders(ctx echo.Context) error {
	if _, err := requireRole(ctx, member.RoleAdmin); err != nil {
		return err
	}

	result, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	return s.renderOrders(ctx, result, err)
}

// ListMembers handles GET /api/v1/admin/members.
func (s *Server) ListMembers(ctx echo.Context, params servers.ListMembersParams) error {
	if _, err := requireRole(ctx, member.RoleAdmin); err != nil {
		return err
	}

	role, err := member.ParseRole(string(params.Role))
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetMembersQuery(role)
	if err != nil {
		return s.fail(ctx, err)
	}

	members, err := s.getMembersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.DirectoryMember, 0, len(members))
	for _, m := range members {
		dm, mapErr := toDirectoryMember(m)
		if mapErr != nil {
			return s.fail(ctx, mapErr)
		}
		response = append(response, dm)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SubscribeEvents handles GET /api/v1/events by upgrading to a websocket session.
func (s *Server) SubscribeEvents(ctx echo.Context, params servers.SubscribeEventsParams) error {
	principal, err := requireRole(ctx)
	if err != nil {
		return err
	}

	var names []string
	if params.Channel != nil {
		names = *params.Channel
	}
	channels, err := s.events.ResolveChannels(principal, names)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.events.Serve(ctx.Response(), ctx.Request(), principal, channels); err != nil {
		s.logger.Warn("event session failed", "principal_id", principal.ID.String(), "error", err)
	}
	return nil
}

func (s *Server) renderOrder(ctx echo.Context, status int, o *order.Order) error {
	view, err := s.views.Build(ctx.Request().Context(), o)
	if err != nil {
		s.logger.Warn("directory lookup failed, responding with identifiers only",
			"order_id", o.ID().String(), "error", err)
		view = views.FromOrder(o)
	}

	response, err := toOrder(view)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, response)
}

func (s *Server) renderOrders(ctx echo.Context, result []views.OrderView, err error) error {
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, 0, len(result))
	for _, v := range result {
		o, mapErr := toOrder(v)
		if mapErr != nil {
			return s.fail(ctx, mapErr)
		}
		response = append(response, o)
	}
	return ctx.JSON(http.StatusOK, response)
}
