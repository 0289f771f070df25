// Package model defines shared types for the gateway.
package model

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// ForwardRequest represents a client request to be forwarded to one of the
// fixed listings upstreams.
type ForwardRequest struct {
	Ctx    context.Context
	Route  string
	Query  url.Values
	Header http.Header
}

// ForwardResponse represents the upstream response to be streamed back.
type ForwardResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}
