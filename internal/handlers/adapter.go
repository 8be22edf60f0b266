package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-reviews-api/internal/middleware"
	"movie-reviews-api/pkg/lambda"
)

// requestFromGin builds the framework-agnostic request for a gin context
func requestFromGin(c *gin.Context) (*lambda.Request, error) {
	req := &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Resource:    c.FullPath(),
		RequestID:   c.GetString(middleware.RequestIDKey),
		Headers:     make(map[string]string, len(c.Request.Header)),
		QueryParams: map[string]string{},
		PathParams:  make(map[string]string, len(c.Params)),
	}

	for name := range c.Request.Header {
		req.Headers[name] = c.Request.Header.Get(name)
	}
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			req.QueryParams[name] = values[0]
		}
	}
	for _, p := range c.Params {
		req.PathParams[p.Key] = p.Value
	}

	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		req.Body = body
	}
	return req, nil
}

// serveGin runs h for a gin request and writes its response
func serveGin(c *gin.Context, h lambda.HandlerFunc) {
	req, err := requestFromGin(c)
	if err != nil {
		writeGin(c, errorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	resp, err := h(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		resp = errorResponse(http.StatusInternalServerError, err.Error())
	}
	writeGin(c, resp)
}

func writeGin(c *gin.Context, resp *lambda.Response) {
	contentType := "application/json"
	for k, v := range resp.Headers {
		if http.CanonicalHeaderKey(k) == "Content-Type" {
			contentType = v
			continue
		}
		c.Header(k, v)
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}
