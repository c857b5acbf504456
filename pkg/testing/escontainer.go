package testing

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

const esImage = "docker.elastic.co/elasticsearch/elasticsearch:8.12.0"

// ESContainer represents a running Elasticsearch test container
type ESContainer struct {
	Container testcontainers.Container
	Address   string
}

// StartESContainer starts a single node with security disabled. The caller terminates it.
func StartESContainer(ctx context.Context) (*ESContainer, error) {
	esContainer, err := startContainer("elasticsearch", func() (*elasticsearch.ElasticsearchContainer, error) {
		return elasticsearch.Run(ctx,
			esImage,
			testcontainers.WithEnv(map[string]string{
				"xpack.security.enabled": "false",
				"ES_JAVA_OPTS":           "-Xms512m -Xmx512m",
			}),
			testcontainers.WithWaitStrategy(
				wait.ForHTTP("/").
					WithPort("9200").
					WithStartupTimeout(90*time.Second),
			),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start elasticsearch container: %w", err)
	}

	host, err := esContainer.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(esContainer)
		return nil, fmt.Errorf("failed to get elasticsearch host: %w", err)
	}

	port, err := esContainer.MappedPort(ctx, "9200")
	if err != nil {
		_ = testcontainers.TerminateContainer(esContainer)
		return nil, fmt.Errorf("failed to get elasticsearch port: %w", err)
	}

	return &ESContainer{
		Container: esContainer,
		Address:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}

func (c *ESContainer) Terminate() error {
	return testcontainers.TerminateContainer(c.Container)
}
