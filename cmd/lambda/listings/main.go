package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/config"
	"dynamic-pricing-api/pkg/server"
)

var container *server.Container

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(context.Background(), cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	awslambda.Start(container.Dispatcher.Handle)
}
