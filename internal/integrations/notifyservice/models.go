package notifyservice

// notifyRequest тело запроса к шлюзу уведомлений
type notifyRequest struct {
	Kind    string            `json:"kind"`
	Phone   string            `json:"phone"`
	Payload map[string]string `json:"payload,omitempty"`
}

// ErrorResponse модель ошибки от шлюза уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
