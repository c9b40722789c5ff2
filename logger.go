package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.elastic.co/apm"
	"go.elastic.co/apm/module/apmechov4"
	"go.elastic.co/apm/module/apmzap"
	"go.uber.org/zap"
)

var (
	zapLogger *zap.Logger
	appEnv    string = os.Getenv("APP_ENV")
	appName   string = getEnv("APP_NAME", "icf-assist")
	apmActive string = os.Getenv("ELASTIC_APM_ACTIVE")
	elkUrl    string = os.Getenv("ELK_URL")
)

func init() {

	// Set logging configuration
	var err error
	zapLogger, err = zap.NewProduction(zap.WrapCore((&apmzap.Core{}).WrapCore))
	if err != nil {
		log.Fatalf("Can't initialize zap logger: %v", err)
	}

	// Flushes buffer if it exists
	defer zapLogger.Sync()
}

func initAPM(e *echo.Echo) {
	// Close default Elastic APM tracer
	zapLogger.Info("Disable default APM logger")
	apm.DefaultTracer.Close()

	// Conditionally enable APM logger based on "ELASTIC_APM_ACTIVE" environment variable.
	if apmActive == "true" {
		// Create new tracer with basic options
		// Use environment variables for the remaining options
		zapLogger.Info("Creating new APM tracer",
			zap.String("ServiceName", appName),
			zap.String("ServiceEnvironment", appEnv))
		tracer, err := apm.NewTracerOptions(apm.TracerOptions{
			ServiceName:        appName,
			ServiceEnvironment: appEnv,
			ServiceVersion:     appVersion,
		})
		if err != nil {
			zapLogger.Fatal(err.Error())
		}

		// Adds elastic APM middleware to web server to capture requests
		// and send them to elastic
		zapLogger.Info("Enabling APM logger")
		e.Use(apmechov4.Middleware(apmechov4.WithTracer(tracer)))
	}
}

func logger(c context.Context, err error) {
	zapLogger.Error(err.Error())
	if apmActive == "true" {
		apm.CaptureError(c, err).Send()
	}
}

func elkLogger(msg map[string]string, level string) error {
	// Set default level if none exists
	if level == "" {
		level = "debug"
	}

	// Sends logs to a test index, if not production
	index := appEnv
	if index != "prod" {
		index = "test"
	}

	// Timestamp in ISO format
	datetime := time.Now().Format(time.RFC3339)

	// Populate remaining message details
	msg["environment"] = index
	msg["level"] = level
	msg["date"] = datetime

	// Build request body
	bodyReader, err := readerFromMap(msg)
	if err != nil {
		return err
	}

	// Set headers for request
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	// Send log message
	resp, err := sendRequest(context.Background(), "POST", elkUrl, nil, headers, bodyReader, 5)
	if err != nil {
		return err
	}

	// Read the body
	body, err := readBody(resp)
	if err != nil {
		return err
	}

	// Verify status code
	if resp.StatusCode >= 400 {
		return fmt.Errorf("log message failed (Request - %s, Status Code - %d): %s", msg["requestId"], resp.StatusCode, string(body))
	}

	return nil
}

// Ships a usage event to ELK. Details must never carry clinical text.
func sendWebLog(c echo.Context, msg string, details map[string]string) {
	if elkUrl == "" {
		return
	}

	// Create base log message
	message := getWebLogContext(c)

	// Add log message and details to map
	message["msg"] = msg
	for key, value := range details {
		message[key] = value
	}

	// Echo contexts are pooled, capture the request context before returning
	ctx := c.Request().Context()

	// Send log message in a separate thread to avoid slowing down the response
	go func() {
		if err := elkLogger(message, "info"); err != nil {
			logger(ctx, fmt.Errorf("%v. Request: %s", err, message["requestId"]))
		}
	}()
}

func getWebLogContext(c echo.Context) map[string]string {
	// Caller subject is only known when OpenID is enabled
	subject, _ := c.Get("subject").(string)

	// Return map with contextual details about the request
	return map[string]string{
		"application": appName,
		"version":     appVersion,
		"requestId":   c.Response().Header().Get(echo.HeaderXRequestID),
		"path":        c.Path(),
		"subject":     subject,
	}
}

// Creates a string reader from a map
func readerFromMap(m map[string]string) (*strings.Reader, error) {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(string(jsonBytes)), nil
}
