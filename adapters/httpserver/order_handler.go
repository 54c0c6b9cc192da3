package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/storefront/backend/adapters/httpserver/model"
	"github.com/storefront/backend/pkg/apperror"
	"github.com/storefront/backend/pkg/pagination"
)

// PlaceOrder godoc
// @Summary PlaceOrder
// @Tags order
// @Accept json
// @Produce json
// @Param payload body model.PlaceOrderRequest true "Place order request"
// @Success 200 {object} model.SuccessResponse{data=model.OrderResponse}
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /orders [post]
func (s *Server) PlaceOrder(c echo.Context) error {
	var (
		ctx = c.Request().Context()
		req model.PlaceOrderRequest
	)

	if err := c.Bind(&req); err != nil {
		return s.error(c, apperror.ErrInvalidRequest(err))
	}

	if err := req.Validate(); err != nil {
		return s.error(c, apperror.ErrInvalidParam(err))
	}

	placed, err := s.OrderService.Place(ctx, req.ID, req.CustomerID, req.Lines())
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, model.NewOrderResponse(placed))
}

// ListOrders godoc
// @Summary ListOrders
// @Tags order
// @Produce json
// @Param paging query model.PagingRequest false "Paging"
// @Success 200 {object} model.SuccessResponse{data=model.ListOrdersResponse}
// @Router /orders [get]
func (s *Server) ListOrders(c echo.Context) error {
	var (
		ctx = c.Request().Context()
		req model.PagingRequest
	)

	if err := c.Bind(&req); err != nil {
		return s.error(c, apperror.ErrInvalidRequest(err))
	}

	if err := req.Validate(); err != nil {
		return s.error(c, apperror.ErrInvalidParam(err))
	}

	cursor := pagination.NewCursor(req.Cursor, req.Limit)
	orders, err := s.OrderService.List(ctx, cursor)
	if err != nil {
		return s.domainError(c, err)
	}

	resp := model.ListOrdersResponse{
		Orders:     make([]model.OrderResponse, len(orders)),
		NextCursor: cursor.NextToken,
	}
	for i := range orders {
		resp.Orders[i] = model.NewOrderResponse(&orders[i])
	}

	return s.success(c, resp)
}

// GetOrder godoc
// @Summary GetOrder
// @Tags order
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} model.SuccessResponse{data=model.OrderResponse}
// @Failure 404 {object} model.ErrorResponse
// @Router /orders/{id} [get]
func (s *Server) GetOrder(c echo.Context) error {
	found, err := s.OrderService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, model.NewOrderResponse(found))
}

func (s *Server) RegisterOrderRoutes(router *echo.Group) {
	router.POST("", s.PlaceOrder)
	router.GET("", s.ListOrders)
	router.GET("/:id", s.GetOrder)
}
