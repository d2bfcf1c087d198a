package model

// MessageResponse is the JSON envelope for every non-link response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ShortenRequest is the body accepted by the create endpoint.
type ShortenRequest struct {
	URL string `json:"url"`
}
