package rest

import (
	"net/http"
	"strings"

	"github.com/KevinKickass/OpenFleetCore/internal/fleet"
	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"github.com/gin-gonic/gin"
)

// GET /api/v1/devices
func (s *Server) listDevices(c *gin.Context) {
	res, err := s.svc.ListDevices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": res.Message,
		"devices": res.Devices,
		"count":   len(res.Devices),
	})
}

// GET /api/v1/devices/:id
func (s *Server) getDevice(c *gin.Context) {
	res, err := s.svc.GetDeviceInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": res.Message,
		"device":  res.Device,
	})
}

// POST /api/v1/devices
func (s *Server) createDevice(c *gin.Context) {
	var req struct {
		DeviceID      string `json:"device_id" binding:"required"`
		DeviceName    string `json:"device_name"`
		DeviceType    string `json:"device_type"`
		InitialStatus string `json:"initial_status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse("REQUEST_400", "Invalid request body", err.Error()))
		return
	}

	initial := types.DeviceStatusUnknown
	if strings.TrimSpace(req.InitialStatus) != "" {
		parsed, ok := types.ParseDeviceStatus(req.InitialStatus)
		if !ok {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse("REQUEST_400", "Invalid device status", req.InitialStatus))
			return
		}
		initial = parsed
	}

	res, err := s.svc.RegisterDevice(c.Request.Context(), fleet.RegisterDeviceRequest{
		DeviceID:      req.DeviceID,
		Name:          req.DeviceName,
		Type:          req.DeviceType,
		InitialStatus: initial,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   res.Message,
		"device_id": res.DeviceID,
	})
}

// PUT /api/v1/devices/:id/status
func (s *Server) setDeviceStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse("REQUEST_400", "Invalid request body", err.Error()))
		return
	}

	status, ok := types.ParseDeviceStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse("REQUEST_400", "Invalid device status", req.Status))
		return
	}

	res, err := s.svc.SetDeviceStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         res.Message,
		"previous_status": res.PreviousStatus,
		"current_status":  res.CurrentStatus,
	})
}

// POST /api/v1/devices/:id/actions
func (s *Server) initiateAction(c *gin.Context) {
	var req struct {
		ActionType   string            `json:"action_type" binding:"required"`
		ActionParams map[string]string `json:"action_params"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse("REQUEST_400", "Invalid request body", err.Error()))
		return
	}

	actionType, ok := types.ParseActionType(req.ActionType)
	if !ok {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse("REQUEST_400", "Invalid action type", req.ActionType))
		return
	}

	res, err := s.svc.InitiateDeviceAction(c.Request.Context(), fleet.InitiateActionRequest{
		DeviceID:   c.Param("id"),
		ActionType: actionType,
		Params:     req.ActionParams,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success":       true,
		"message":       res.Message,
		"action_id":     res.ActionID,
		"action_status": res.Status,
	})
}

// GET /api/v1/actions/:id
func (s *Server) getAction(c *gin.Context) {
	res, err := s.svc.GetDeviceActionStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": res.Message,
		"action":  res.Action,
	})
}
