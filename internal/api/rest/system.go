package rest

import (
	"net/http"

	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"github.com/gin-gonic/gin"
)

// GET /api/v1/system/status
func (s *Server) getSystemStatus(c *gin.Context) {
	if s.lm == nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse("SYSTEM_503", "Lifecycle manager not available", nil))
		return
	}
	c.JSON(http.StatusOK, s.lm.GetCurrentStatus())
}
