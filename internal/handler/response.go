package handler

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// AccessDeniedResponse is rendered instead of protected content when a
// session lacks permission. Fallback is a safe route the client can
// offer as a way back.
type AccessDeniedResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Fallback string `json:"fallback"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

func NewAccessDeniedResponse(fallback string) *AccessDeniedResponse {
	return &AccessDeniedResponse{
		Status:   "error",
		Message:  "access denied",
		Fallback: fallback,
	}
}
