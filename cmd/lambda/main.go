package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/quizgen-lambda/internal/config"
	"github.com/saulo-duarte/quizgen-lambda/internal/container"
)

var adapter *httpadapter.HandlerAdapter

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Logger().WithError(err).Fatal("Invalid configuration")
	}
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)

	// built once per cold start and reused across invocations
	c, err := container.New(context.Background(), cfg)
	if err != nil {
		config.Logger().WithError(err).Fatal("Failed to build container")
	}

	adapter = httpadapter.New(c.Handler())
	lambda.Start(handler)
}
