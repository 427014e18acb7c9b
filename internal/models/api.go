package models

// API Error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
