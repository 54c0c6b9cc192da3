package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storefront/backend/adapters/httpserver/model"
	"github.com/storefront/backend/pkg/apperror"
	"github.com/storefront/backend/pkg/pagination"
)

// CreateProduct godoc
// @Summary CreateProduct
// @Description Create a product and publish ProductCreatedEvent
// @Tags product
// @Accept json
// @Produce json
// @Param payload body model.CreateProductRequest true "Create product request"
// @Success 200 {object} model.SuccessResponse{data=product.Product}
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /products [post]
func (s *Server) CreateProduct(c echo.Context) error {
	var (
		ctx = c.Request().Context()
		req model.CreateProductRequest
	)

	if err := c.Bind(&req); err != nil {
		return s.error(c, apperror.ErrInvalidRequest(err))
	}

	if err := req.Validate(); err != nil {
		return s.error(c, apperror.ErrInvalidParam(err))
	}

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	created, err := s.ProductService.Create(ctx, req.ID, req.Name, req.Description, req.Price)
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, created)
}

// ListProducts godoc
// @Summary ListProducts
// @Tags product
// @Produce json
// @Param paging query model.PagingRequest false "Paging"
// @Success 200 {object} model.SuccessResponse{data=model.ListProductsResponse}
// @Router /products [get]
func (s *Server) ListProducts(c echo.Context) error {
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
	products, err := s.ProductService.List(ctx, cursor)
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, model.ListProductsResponse{
		Products:   products,
		NextCursor: cursor.NextToken,
	})
}

// GetProduct godoc
// @Summary GetProduct
// @Tags product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.SuccessResponse{data=product.Product}
// @Failure 404 {object} model.ErrorResponse
// @Router /products/{id} [get]
func (s *Server) GetProduct(c echo.Context) error {
	found, err := s.ProductService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, found)
}

// ChangeProductPrice godoc
// @Summary ChangeProductPrice
// @Tags product
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param payload body model.ChangePriceRequest true "New price"
// @Success 200 {object} model.SuccessResponse{data=product.Product}
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /products/{id}/price [put]
func (s *Server) ChangeProductPrice(c echo.Context) error {
	var (
		ctx = c.Request().Context()
		req model.ChangePriceRequest
	)

	if err := c.Bind(&req); err != nil {
		return s.error(c, apperror.ErrInvalidRequest(err))
	}

	if err := req.Validate(); err != nil {
		return s.error(c, apperror.ErrInvalidParam(err))
	}

	updated, err := s.ProductService.ChangePrice(ctx, req.ID, req.Price)
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, updated)
}

func (s *Server) RegisterProductRoutes(router *echo.Group) {
	router.POST("", s.CreateProduct)
	router.GET("", s.ListProducts)
	router.GET("/:id", s.GetProduct)
	router.PUT("/:id/price", s.ChangeProductPrice)
}
