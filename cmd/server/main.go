// Local development server. It serves the same dispatcher the Lambda
// entrypoint uses, adapting plain HTTP requests to the API Gateway event
// shape so the whole pipeline can be exercised without a deployed gateway.
package main

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/config"
	"dynamic-pricing-api/internal/handlers"
	"dynamic-pricing-api/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	adapt := adaptDispatcher(container.Dispatcher)
	router.POST("/listings", adapt)
	router.GET("/listings", adapt)
	router.GET("/listings/:listingId", adapt)
	router.PUT("/listings/:listingId", adapt)
	router.DELETE("/listings/:listingId", adapt)

	logrus.WithField("port", cfg.Port).Info("Starting development server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}

// adaptDispatcher converts a gin request into a gateway proxy event, invokes
// the dispatcher and copies the proxy response back onto the HTTP response.
func adaptDispatcher(d *handlers.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusInternalServerError, "Error processing request")
			return
		}

		event := events.APIGatewayProxyRequest{
			HTTPMethod:     c.Request.Method,
			Path:           c.Request.URL.Path,
			Body:           string(body),
			PathParameters: map[string]string{},
			RequestContext: events.APIGatewayProxyRequestContext{
				Authorizer: authorizerFromHeader(c.GetHeader("Authorization")),
			},
		}
		if id := c.Param("listingId"); id != "" {
			event.PathParameters["listingId"] = id
		}

		resp, err := d.Handle(c.Request.Context(), event)
		if err != nil {
			c.String(http.StatusInternalServerError, "Error processing request")
			return
		}

		for key, value := range resp.Headers {
			c.Header(key, value)
		}
		if resp.Body == "" {
			c.Status(resp.StatusCode)
			return
		}
		contentType := resp.Headers["Content-Type"]
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		c.Data(resp.StatusCode, contentType, []byte(resp.Body))
	}
}

// authorizerFromHeader rebuilds the authorizer claims map the gateway would
// attach. The deployed gateway verifies the token upstream; locally the claims
// are read from the bearer token without verification, for development only.
func authorizerFromHeader(header string) map[string]interface{} {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		logrus.WithError(err).Warn("Failed to parse bearer token")
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	return map[string]interface{}{"claims": map[string]interface{}(claims)}
}
