// Package lambda adapts API Gateway proxy events to framework-agnostic
// handlers and routes them by resource template.
package lambda

import (
	"context"
	"strings"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Resource    string            `json:"resource"`
	RequestID   string            `json:"request_id"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Header returns the first header matching name case-insensitively
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// PathParam returns a path parameter or ""
func (r *Request) PathParam(name string) string {
	return r.PathParams[name]
}

// QueryParam returns a query string parameter or ""
func (r *Request) QueryParam(name string) string {
	return r.QueryParams[name]
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)
