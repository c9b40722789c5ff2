package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"go.elastic.co/apm"
)

var (
	authHost string = os.Getenv("AUTH_HOST")
)

const (
	// Utilizes a non-standard nginx code
	statusClosedConnection int = 499
)

func filterError(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := c.Response()
		// Process the request
		err := next(c)
		// The below is executed after the request and subsequent middleware
		if err != nil {
			// Check for a broken pipe, modify response status, and create an error
			if errors.Is(err, syscall.EPIPE) {
				logger(c.Request().Context(), err)
				resp.Status = statusClosedConnection
				return nil
			}
		}
		return err
	}
}

func openId(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Obtains raw http request
		r := c.Request()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger(r.Context(), errors.New("authorization header not found"))
			return c.NoContent(http.StatusUnauthorized)
		}

		err := sendAuth(r.Context(), "openid", authHeader)
		if err != nil {
			logger(r.Context(), err)
			return c.NoContent(http.StatusUnauthorized)
		}

		// Convert auth header to token
		token, err := parseToken(authHeader)
		if err != nil {
			logger(r.Context(), err)
			return c.NoContent(http.StatusUnauthorized)
		}

		// Record the caller for request logs, a missing subject is not fatal
		subject, err := getSubject(token)
		if err != nil {
			logger(r.Context(), err)
		}

		// Set token and subject on context struct
		c.Set("user", token)
		c.Set("subject", subject)

		// Otherwise return
		return next(c)
	}
}

func sendAuth(ctx context.Context, api string, authHeader string) error {
	// Create span
	span, ctx := apm.StartSpan(ctx, "Authorize Request", "OpenId")
	defer span.End()

	// Add headers
	headers := map[string]string{
		"Authorization": authHeader,
	}

	// Send http request to auth service
	// If it fails, fail the request
	resp, err := sendRequest(ctx, http.MethodPost, authHost+api, nil, headers, nil, 5)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	resp.Body.Close()

	// Verify status code
	// If this succeeds, the token is likely valid
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}

	// Otherwise return
	return nil
}
