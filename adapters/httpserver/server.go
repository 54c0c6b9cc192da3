package httpserver

import (
	"errors"
	"net/http"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/storefront/backend/adapters/httpserver/model"
	"github.com/storefront/backend/adapters/services"
	"github.com/storefront/backend/domain/customer"
	"github.com/storefront/backend/domain/order"
	"github.com/storefront/backend/domain/product"
	"github.com/storefront/backend/pkg/apperror"
	"github.com/storefront/backend/pkg/config"
	"github.com/storefront/backend/pkg/pagination"
	"github.com/storefront/backend/pkg/sentry"
	"go.uber.org/zap"
)

type Options func(s *Server) error

type Server struct {
	router *echo.Echo
	Config *config.Config
	Logger *zap.SugaredLogger

	// application services
	CustomerService customer.Service
	ProductService  product.Service
	OrderService    order.Service
}

func New(cfg *config.Config, logger *zap.SugaredLogger, options ...Options) (*Server, error) {
	s := Server{
		router: echo.New(),
		Config: cfg,
		Logger: logger,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}

	s.router.HideBanner = true
	s.RegisterGlobalMiddlewares()
	s.RegisterHealthCheck(s.router.Group(""))

	s.RegisterCustomerRoutes(s.router.Group("/api/customers"))
	s.RegisterProductRoutes(s.router.Group("/api/products"))
	s.RegisterOrderRoutes(s.router.Group("/api/orders"))

	return &s, nil
}

func WithCustomerService(svc customer.Service) Options {
	return func(s *Server) error {
		s.CustomerService = svc
		return nil
	}
}

func WithProductService(svc product.Service) Options {
	return func(s *Server) error {
		s.ProductService = svc
		return nil
	}
}

func WithOrderService(svc order.Service) Options {
	return func(s *Server) error {
		s.OrderService = svc
		return nil
	}
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.router.Use(middleware.Recover())
	s.router.Use(middleware.Secure())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Gzip())
	s.router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	// CORS
	if s.Config.AllowOrigins != "" {
		aos := strings.Split(s.Config.AllowOrigins, ",")
		s.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: aos,
		}))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) RegisterHealthCheck(router *echo.Group) {
	router.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK!!!")
	})
}

// domainError maps service errors onto API errors.
func (s *Server) domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrEventDelivery):
		return s.error(c, apperror.ErrEventDelivery(err))
	case errors.Is(err, customer.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		return s.error(c, apperror.ErrEntityNotFound(err))
	case errors.Is(err, customer.ErrAlreadyExists),
		errors.Is(err, product.ErrAlreadyExists),
		errors.Is(err, order.ErrAlreadyExists):
		return s.error(c, apperror.ErrConflict(err))
	case errors.Is(err, customer.ErrInvalidCustomer),
		errors.Is(err, customer.ErrInvalidAddress),
		errors.Is(err, customer.ErrAddressRequired),
		errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, order.ErrInvalidOrder),
		errors.Is(err, order.ErrItemsRequired):
		return s.error(c, apperror.ErrInvalidEntity(err))
	case errors.Is(err, services.ErrInvalidCSV):
		return s.error(c, apperror.ErrInvalidRequest(err))
	case errors.Is(err, pagination.ErrInvalidToken):
		return s.error(c, apperror.ErrInvalidParam(err))
	}

	return s.error(c, apperror.ErrInternalServer(err))
}

func (s *Server) error(c echo.Context, err error) error {
	s.Logger.Errorw(
		err.Error(),
		zap.String("request_id", s.requestID(c)),
	)

	var appErr apperror.Error
	if !errors.As(err, &appErr) {
		sentry.WithContext(c).Error(err)

		return c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    apperror.InternalServerCode,
			Message: "Internal Server Error",
			Info:    err.Error(),
		})
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		sentry.WithContext(c).Error(err)
	}

	var errMessage string
	if appErr.Raw != nil {
		errMessage = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, model.ErrorResponse{
		Code:    appErr.ErrorCode,
		Message: appErr.Message,
		Info:    errMessage,
	})
}

func (s *Server) success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, model.SuccessResponse{
		Message: "OK",
		Data:    data,
	})
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
