package rest

import (
	"errors"
	"net/http"

	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto an HTTP status and error code.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "SYSTEM_500"

	switch {
	case errors.Is(err, types.ErrDeviceNotFound):
		status, code = http.StatusNotFound, "DEVICE_404"
	case errors.Is(err, types.ErrActionNotFound):
		status, code = http.StatusNotFound, "ACTION_404"
	case errors.Is(err, types.ErrDeviceExists):
		status, code = http.StatusConflict, "DEVICE_409"
	case errors.Is(err, types.ErrDeviceBusy):
		status, code = http.StatusConflict, "DEVICE_BUSY"
	case errors.Is(err, types.ErrInvalidArgument):
		status, code = http.StatusBadRequest, "REQUEST_400"
	case errors.Is(err, types.ErrEngineStopped):
		status, code = http.StatusServiceUnavailable, "SYSTEM_503"
	}

	_ = c.Error(err)
	c.JSON(status, types.NewErrorResponse(code, err.Error(), nil))
}
