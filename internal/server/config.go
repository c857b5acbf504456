package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/torrent-hunter/pkg/config/env"
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string

	// RequestTimeout bounds every request context, so searches inherit it as their deadline.
	// Zero leaves requests unbounded.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig reads the HTTP settings. The .env file is loaded by the caller.
func LoadConfig() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := env.List("CORS_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	requestTimeout, err := env.Duration("REQUEST_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := env.Duration("SHUTDOWN_TIMEOUT", GracefulShutdownTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            port,
		UseHttp2:        env.Bool("USE_HTTP2"),
		CorsOrigins:     origins,
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}
