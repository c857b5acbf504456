package es

import (
	"context"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
)

type HealthChecker struct {
	client *elasticsearch.TypedClient
}

func NewHealthChecker(client *elasticsearch.TypedClient) *HealthChecker {
	return &HealthChecker{client: client}
}

func (hc *HealthChecker) Name() string {
	return backendName
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.client == nil {
		return false
	}

	ok, err := hc.client.Ping().Do(ctx)
	if err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}
