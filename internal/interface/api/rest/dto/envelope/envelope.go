package envelope

import "net/http"

const StatusSuccess = "success"

// Response is the uniform wrapper of every successful JSON answer.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Code    int    `json:"code"`
}

func OK(message string, data any) Response {
	if data == nil {
		data = []any{}
	}
	return Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
		Code:    http.StatusOK,
	}
}
