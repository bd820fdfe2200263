// Package api defines the wire-level types shared by all HTTP handlers.
package api

// ErrorResponse is the uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
}
