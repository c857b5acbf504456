package es

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string

	// MaxRetries is the transport retry budget. Zero keeps the client default,
	// a negative value disables retries.
	MaxRetries int

	// Transport overrides the HTTP transport, mostly for tests
	Transport http.RoundTripper
}

func (c ClientConfig) elasticsearch() elasticsearch.Config {
	cfg := elasticsearch.Config{
		Addresses:     c.Addresses,
		Transport:     c.Transport,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	}
	switch {
	case c.MaxRetries < 0:
		cfg.DisableRetry = true
	case c.MaxRetries > 0:
		cfg.MaxRetries = c.MaxRetries
	}
	if c.Username != "" && c.Password != "" {
		cfg.Username = c.Username
		cfg.Password = c.Password
	}
	return cfg
}

// NewClient builds the typed client once so it can be shared by the searcher, indexer and health checks.
func NewClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	client, err := elasticsearch.NewTypedClient(config.elasticsearch())
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return client, nil
}
