package api

// TransactionResponse is the body returned by mutating endpoints.
// The shape (status_code + transaction message) is part of the public API.
type TransactionResponse struct {
	StatusCode  int    `json:"status_code"`
	Transaction string `json:"transaction"`
}

// WelcomeResponse is the body returned by the root endpoint.
type WelcomeResponse struct {
	Message string `json:"message"`
}
