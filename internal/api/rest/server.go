package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/KevinKickass/OpenFleetCore/internal/api/websocket"
	"github.com/KevinKickass/OpenFleetCore/internal/config"
	"github.com/KevinKickass/OpenFleetCore/internal/fleet"
	"github.com/KevinKickass/OpenFleetCore/internal/interfaces"
	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeviceService is the request boundary the HTTP handlers delegate to.
type DeviceService interface {
	RegisterDevice(ctx context.Context, req fleet.RegisterDeviceRequest) (fleet.RegisterDeviceResult, error)
	SetDeviceStatus(ctx context.Context, deviceID string, status types.DeviceStatus) (fleet.SetDeviceStatusResult, error)
	GetDeviceInfo(ctx context.Context, deviceID string) (fleet.DeviceInfoResult, error)
	ListDevices(ctx context.Context) (fleet.ListDevicesResult, error)
	InitiateDeviceAction(ctx context.Context, req fleet.InitiateActionRequest) (fleet.InitiateActionResult, error)
	GetDeviceActionStatus(ctx context.Context, actionID string) (fleet.ActionStatusResult, error)
}

type Server struct {
	router *gin.Engine
	svc    DeviceService
	lm     interfaces.LifecycleManager
	logger *zap.Logger
	server *http.Server
	wsHub  *websocket.Hub
}

func NewServer(cfg *config.Config, svc DeviceService, lm interfaces.LifecycleManager, wsHub *websocket.Hub, logger *zap.Logger) *Server {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router: gin.New(),
		svc:    svc,
		lm:     lm,
		logger: logger,
		wsHub:  wsHub,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.Serve(lis)
	return nil
}

// Serve accepts connections on lis in the background.
func (s *Server) Serve(lis net.Listener) {
	s.logger.Info("Starting REST API server", zap.String("address", lis.Addr().String()))
	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("REST server failed", zap.Error(err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down REST API server")
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(CORSMiddleware())

	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1")
	{
		devices := v1.Group("/devices")
		{
			devices.GET("", s.listDevices)
			devices.POST("", s.createDevice)
			devices.GET("/:id", s.getDevice)
			devices.PUT("/:id/status", s.setDeviceStatus)
			devices.POST("/:id/actions", s.initiateAction)
		}

		v1.GET("/actions/:id", s.getAction)

		v1.GET("/system/status", s.getSystemStatus)

		ws := v1.Group("/ws")
		{
			ws.GET("/events", s.wsEvents)
			ws.GET("/status", s.wsStatus)
		}
	}
}

func (s *Server) wsEvents(c *gin.Context) {
	if s.wsHub == nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse("WS_503", "Event stream not available", nil))
		return
	}
	websocket.ServeWs(s.wsHub, c.Writer, c.Request)
}

func (s *Server) wsStatus(c *gin.Context) {
	count := 0
	if s.wsHub != nil {
		count = s.wsHub.GetClientCount()
	}
	c.JSON(http.StatusOK, gin.H{
		"connected_clients": count,
	})
}

// Health check (public)
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}
