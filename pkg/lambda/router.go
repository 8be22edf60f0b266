package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds one invocation when no timeout is configured
const DefaultTimeout = 10 * time.Second

type route struct {
	method   string
	resource string
	segments []string
	handler  HandlerFunc
}

// Router dispatches API Gateway proxy events to handlers keyed by
// "METHOD /resource/{param}" templates
type Router struct {
	routes  []route
	timeout time.Duration
	logger  *logrus.Logger
}

// NewRouter creates a router. A zero timeout means DefaultTimeout.
func NewRouter(timeout time.Duration, logger *logrus.Logger) *Router {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Router{timeout: timeout, logger: logger}
}

// Handle registers h for method and resource template, e.g. "/movies/{movieId}"
func (r *Router) Handle(method, resource string, h HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   strings.ToUpper(method),
		resource: resource,
		segments: splitPath(resource),
		handler:  h,
	})
}

// Serve is the Lambda entry point
func (r *Router) Serve(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	req, err := NewRequest(event)
	if err != nil {
		return toProxyResponse(errorResponse(http.StatusBadRequest, "Bad request", err.Error())), nil
	}

	entry := r.logger.WithFields(logrus.Fields{
		"request_id": req.RequestID,
		"method":     req.Method,
		"resource":   req.Resource,
		"path":       req.Path,
	})

	resp := r.dispatch(ctx, req)

	entry.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Info("Request completed")

	return toProxyResponse(resp), nil
}

// dispatch runs the matching handler under the invocation deadline
func (r *Router) dispatch(ctx context.Context, req *Request) *Response {
	rt, params, ok := r.match(req)
	if !ok {
		return errorResponse(http.StatusNotFound, "Not found", "no route for "+req.Method+" "+req.Path)
	}
	if len(req.PathParams) == 0 {
		req.PathParams = params
	}
	if req.Resource == "" {
		req.Resource = rt.resource
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := rt.handler(ctx, req)
	if err != nil {
		r.logger.WithError(err).WithField("resource", rt.resource).Error("Handler failed")
		return errorResponse(http.StatusInternalServerError, "Internal server error", err.Error())
	}
	if resp == nil {
		return errorResponse(http.StatusInternalServerError, "Internal server error", "handler returned no response")
	}
	return resp
}

// match prefers the API Gateway resource template and falls back to
// matching the raw path segment by segment
func (r *Router) match(req *Request) (route, map[string]string, bool) {
	method := strings.ToUpper(req.Method)

	if req.Resource != "" {
		for _, rt := range r.routes {
			if rt.method == method && rt.resource == req.Resource {
				return rt, nil, true
			}
		}
	}

	parts := splitPath(req.Path)
	for _, rt := range r.routes {
		if rt.method != method || len(rt.segments) != len(parts) {
			continue
		}
		params := map[string]string{}
		matched := true
		for i, seg := range rt.segments {
			if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
				params[seg[1:len(seg)-1]] = parts[i]
				continue
			}
			if seg != parts[i] {
				matched = false
				break
			}
		}
		if matched {
			return rt, params, true
		}
	}
	return route{}, nil, false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// NewRequest converts an API Gateway proxy event to a Request
func NewRequest(event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Resource:    event.Resource,
		RequestID:   event.RequestContext.RequestID,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
	}, nil
}

func toProxyResponse(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}

func errorResponse(status int, title, message string) *Response {
	body, _ := json.Marshal(map[string]string{"error": title, "message": message})
	return &Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}
