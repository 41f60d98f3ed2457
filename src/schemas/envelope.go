package schemas

// Response is the uniform API envelope. Code 200 means success; any other
// code is an application-level error regardless of the HTTP status.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func Success(data interface{}) *Response {
	return &Response{Code: 200, Message: "success", Data: data}
}

func Error(code int, message string) *Response {
	return &Response{Code: code, Message: message}
}
