package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"movie-reviews-api/internal/config"
	"movie-reviews-api/internal/middleware"
)

var authService *middleware.AuthService

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	config.SetupLogging(cfg)

	authService = middleware.NewAuthService(cfg.AuthConfig())
}

func handler(ctx context.Context, event events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	return authService.AuthorizeRequest(event), nil
}

func main() {
	awslambda.Start(handler)
}
