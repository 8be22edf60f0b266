package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/config"
	"movie-reviews-api/internal/handlers"
	"movie-reviews-api/pkg/lambda"
	"movie-reviews-api/pkg/server"
)

var router *lambda.Router

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	logger := config.SetupLogging(cfg)

	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize container")
	}

	router = lambda.NewRouter(cfg.Server.InvocationTimeout, logger)
	handlers.RegisterReviewRoutes(router, handlers.NewReviewHandler(container.ReviewService))

	logger.WithFields(logrus.Fields{
		"function": config.DetectServerless().FunctionName,
	}).Info("Reviews function ready")
}

func main() {
	awslambda.Start(router.Serve)
}
