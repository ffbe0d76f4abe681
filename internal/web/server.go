package web

import (
	"time"

	"delservice/internal/address"
	"delservice/internal/auth"
	"delservice/internal/client"
	"delservice/internal/logger"
	"delservice/internal/order"
	"delservice/internal/paymethod"
	"delservice/internal/product"
	"delservice/internal/report"
	"delservice/internal/role"
	"delservice/internal/status"
	"delservice/internal/user"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Services collects everything the HTTP layer talks to.
type Services struct {
	Auth      auth.Service
	Clients   client.Service
	Users     user.Service
	Roles     role.Service
	Addresses address.Service
	Products  product.Service
	Statuses  status.Service
	Methods   paymethod.Service
	Orders    order.Service
	Reports   report.Service
}

type Server struct {
	echo         *echo.Echo
	auth         auth.Service
	clients      client.Service
	users        user.Service
	roles        role.Service
	addresses    address.Service
	products     product.Service
	statuses     status.Service
	methods      paymethod.Service
	orders       order.Service
	reports      report.Service
	loginLimiter *loginLimiter
}

func NewServer(svcs Services) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(logger.RequestIDMiddleware)
	e.Use(logger.LoggingMiddleware)

	s := &Server{
		echo:         e,
		auth:         svcs.Auth,
		clients:      svcs.Clients,
		users:        svcs.Users,
		roles:        svcs.Roles,
		addresses:    svcs.Addresses,
		products:     svcs.Products,
		statuses:     svcs.Statuses,
		methods:      svcs.Methods,
		orders:       svcs.Orders,
		reports:      svcs.Reports,
		// 5 attempts, refilling one every 3 seconds.
		loginLimiter: newLoginLimiter(rate.Every(3*time.Second), 5),
	}
	s.routes()
	return s, nil
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}
