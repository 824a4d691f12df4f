package types

import "errors"

// Domain errors shared by the registry, the action engine and the API layers.
//
// Check them with errors.Is:
//
//	if errors.Is(err, types.ErrDeviceNotFound) {
//	    // map to 404 / codes.NotFound
//	}
var (
	ErrDeviceNotFound  = errors.New("device: not found")
	ErrDeviceExists    = errors.New("device: already exists")
	ErrDeviceBusy      = errors.New("device: already busy")
	ErrActionNotFound  = errors.New("action: not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEngineStopped   = errors.New("action engine: shutting down")
	ErrInternal        = errors.New("internal error")
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds a consistent API error payload.
// details can be string, map, struct, etc.
func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
