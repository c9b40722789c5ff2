package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/chop-dbhi/icf-assist/internal/icf"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	config              *Config
	keywordTable        icf.KeywordTable
	interventionLibrary *icf.InterventionLibrary
	llm                 *llmClient
	port                string = getEnv("PORT", "8000")
)

func init() {
	var err error

	// Extract necessary environment variables
	timeoutEnv := os.Getenv("TIMEOUT")
	appVersion = os.Getenv("APP_VERSION")

	// Set default value if not set
	if timeoutEnv == "" {
		globalTimeout = 30
	} else {
		// Convert timeout to integer
		globalTimeout, err = strconv.Atoi(timeoutEnv)
		if err != nil {
			log.Fatalf("Failed to convert timeout environment variable to integer")
		}
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "icf-assist",
		Short:        "ICF code matching and score analysis service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		// Serving is the default when no command is given
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(analyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() error {
	var err error

	// Read optional config file
	config, err = readConfig()
	if err != nil {
		return err
	}

	return loadResources(config)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newServer() *echo.Echo {
	// Create new Echo object
	e := echo.New()
	e.HideBanner = true

	// Add basic middleware to log all requests
	e.Use(middleware.Logger())

	// Sets a uuid X-Request-Id on every response, also sent with ELK events
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Configure elastic apm logging
	initAPM(e)

	// Sets CORS headers to allow all origins, but restrict HTTP method type
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	// Middleware to provide more control over response status for APM transactions
	// This must go after the Elastic APM middleware
	e.Use(filterError)

	// Adds a heartbeat handler
	e.GET("/heartbeat", heartbeat)

	// Add a GET handler for presenting the services available
	e.GET("/services", services)

	// Creates API group to simplify middleware declaration
	icfGroup := e.Group("/icf")

	// OpenID is only enforced when an auth host is configured
	if authHost != "" {
		icfGroup.Use(openId)
	}

	// Reference data
	icfGroup.GET("/codes", icfCodes)
	icfGroup.GET("/core-sets", coreSets)

	// Matching, recommendations and analysis
	icfGroup.POST("/match", icfMatch)
	icfGroup.POST("/score-recommendation", scoreRecommendation)
	icfGroup.POST("/score-recommendation/batch", batchScoreRecommendation)
	icfGroup.POST("/intervention-recommendation", interventionRecommendation)
	icfGroup.POST("/analysis", analysis)

	return e
}

func runServer() error {
	e := newServer()

	// Start server
	go func() {
		zapLogger.Info("Starting server", zap.String("port", port), zap.Bool("llm", llm != nil))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal(err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
