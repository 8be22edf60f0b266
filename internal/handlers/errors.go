package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/models"
	"movie-reviews-api/internal/services"
	"movie-reviews-api/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error            string                  `json:"error"`
	Message          string                  `json:"message"`
	ValidationErrors models.ValidationErrors `json:"validation_errors,omitempty"`
}

// DataResponse wraps a successful read
type DataResponse struct {
	Data interface{} `json:"data"`
}

// MessageResponse acknowledges a successful write
type MessageResponse struct {
	Message string `json:"message"`
}

func jsonResponse(status int, body interface{}) *lambda.Response {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(ErrorResponse{Error: "Internal server error", Message: err.Error()})
	}
	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       payload,
	}
}

func dataResponse(status int, data interface{}) *lambda.Response {
	return jsonResponse(status, DataResponse{Data: data})
}

func messageResponse(status int, message string) *lambda.Response {
	return jsonResponse(status, MessageResponse{Message: message})
}

func errorResponse(status int, message string) *lambda.Response {
	return jsonResponse(status, ErrorResponse{Error: errorTitle(status), Message: message})
}

func errorTitle(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusNotFound:
		return "Not found"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return http.StatusText(status)
	}
}

// badRequest reports a parameter or body that could not be parsed
func badRequest(err error) *lambda.Response {
	resp := ErrorResponse{Error: errorTitle(http.StatusBadRequest), Message: err.Error()}
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		resp.ValidationErrors = verrs
	}
	return jsonResponse(http.StatusBadRequest, resp)
}

// statusFor maps a service error kind to an HTTP status
func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindInvalid:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorFromService renders any error returned by a service. Faults echo the
// underlying message.
func errorFromService(req *lambda.Request, err error) *lambda.Response {
	status := statusFor(services.KindOf(err))

	resp := ErrorResponse{Error: errorTitle(status), Message: err.Error()}

	var serr *services.Error
	if errors.As(err, &serr) {
		resp.Message = serr.Message
	}

	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		resp.ValidationErrors = verrs
	}

	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"method":     req.Method,
			"path":       req.Path,
			"error":      err.Error(),
		}).Error("Request failed")
	}

	return jsonResponse(status, resp)
}
