package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storefront/backend/adapters/httpserver/model"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/pkg/app"
	"github.com/storefront/backend/pkg/apperror"
	"github.com/storefront/backend/pkg/pagination"
)

// CreateCustomer godoc
// @Summary CreateCustomer
// @Description Create a customer and publish CustomerCreatedEvent
// @Tags customer
// @Accept json
// @Produce json
// @Param payload body model.CreateCustomerRequest true "Create customer request"
// @Success 200 {object} model.SuccessResponse{data=customer.Customer}
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /customers [post]
func (s *Server) CreateCustomer(c echo.Context) error {
	var (
		ctx = c.Request().Context()
		req model.CreateCustomerRequest
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

	var address *customer.Address
	if req.Address != nil {
		addr := req.Address.ToDomain()
		address = &addr
	}

	created, err := s.CustomerService.Create(ctx, req.ID, req.Name, address)
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, created)
}

// ImportCustomers godoc
// @Summary ImportCustomers
// @Description Create customers from a CSV file (id,name[,street,number,zip,city])
// @Tags customer
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} model.SuccessResponse{data=model.ImportCustomersResponse}
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /customers/import [post]
func (s *Server) ImportCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	file, err := app.BindTextFile(c, "file")
	if err != nil {
		return s.error(c, apperror.ErrInvalidRequest(err))
	}

	created, err := s.CustomerService.Import(ctx, file)
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, model.ImportCustomersResponse{Customers: created})
}

// ListCustomers godoc
// @Summary ListCustomers
// @Tags customer
// @Produce json
// @Param paging query model.PagingRequest false "Paging"
// @Success 200 {object} model.SuccessResponse{data=model.ListCustomersResponse}
// @Failure 400 {object} model.ErrorResponse
// @Router /customers [get]
func (s *Server) ListCustomers(c echo.Context) error {
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
	customers, err := s.CustomerService.List(ctx, cursor)
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, model.ListCustomersResponse{
		Customers:  customers,
		NextCursor: cursor.NextToken,
	})
}

// GetCustomer godoc
// @Summary GetCustomer
// @Tags customer
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} model.SuccessResponse{data=customer.Customer}
// @Failure 404 {object} model.ErrorResponse
// @Router /customers/{id} [get]
func (s *Server) GetCustomer(c echo.Context) error {
	found, err := s.CustomerService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, found)
}

// ChangeCustomerAddress godoc
// @Summary ChangeCustomerAddress
// @Description Change the address of a customer and publish CustomerAddressChangedEvent
// @Tags customer
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param payload body model.AddressRequest true "New address"
// @Success 200 {object} model.SuccessResponse{data=customer.Customer}
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /customers/{id}/address [put]
func (s *Server) ChangeCustomerAddress(c echo.Context) error {
	var (
		ctx = c.Request().Context()
		req model.ChangeAddressRequest
	)

	if err := c.Bind(&req); err != nil {
		return s.error(c, apperror.ErrInvalidRequest(err))
	}

	if err := req.Validate(); err != nil {
		return s.error(c, apperror.ErrInvalidParam(err))
	}

	updated, err := s.CustomerService.ChangeAddress(ctx, req.ID, req.AddressRequest.ToDomain())
	if err != nil {
		return s.domainError(c, err)
	}

	return s.success(c, updated)
}

func (s *Server) RegisterCustomerRoutes(router *echo.Group) {
	router.POST("", s.CreateCustomer)
	router.POST("/import", s.ImportCustomers)
	router.GET("", s.ListCustomers)
	router.GET("/:id", s.GetCustomer)
	router.PUT("/:id/address", s.ChangeCustomerAddress)
}
