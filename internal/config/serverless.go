package config

import (
	"os"

	"movie-reviews-api/internal/repositories"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// DetectServerless inspects the Lambda runtime environment
func DetectServerless() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return isRunningInLambda()
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless switches a Lambda deployment to DynamoDB. The
// function filesystem is read-only and not shared between instances.
func AdaptConfigForServerless(config *Config) *Config {
	sc := DetectServerless()
	if !sc.IsLambda {
		return config
	}

	config.Store.Backend = repositories.BackendDynamoDB
	config.Store.SQLite.AutoMigrate = false
	if sc.Region != "" {
		config.Store.DynamoDB.Region = sc.Region
	}

	return config
}
