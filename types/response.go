package types

// ApiResponse is the envelope every admin endpoint answers with.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Ok(message string, data interface{}) ApiResponse {
	return ApiResponse{Success: true, Message: message, Data: data}
}

func Fail(message string) ApiResponse {
	return ApiResponse{Success: false, Message: message}
}
