package helpers

import "github.com/joshua-takyi/calendar/internal/models"

type ApiResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Violations []models.Violation `json:"violations,omitempty"`
	RequestID  interface{}        `json:"request_id,omitempty"`
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

func ValidationErrorResponse(violations []models.Violation) ApiResponse {
	return ApiResponse{
		Success:    false,
		Error:      "Validation failed",
		Violations: violations,
	}
}

func InternalErrorResponse(requestID interface{}) ApiResponse {
	return ApiResponse{
		Success:   false,
		Error:     "Internal server error",
		RequestID: requestID,
	}
}
