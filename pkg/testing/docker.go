package testing

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
)

// DockerAvailable reports whether a container runtime answers. testcontainers panics
// while resolving the docker host when none is configured, so that is treated as absent.
func DockerAvailable(ctx context.Context) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		return false
	}
	defer provider.Close()

	return provider.Health(ctx) == nil
}

// startContainer runs start and reports a runtime panic as an error.
func startContainer[T any](name string, start func() (T, error)) (c T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to start %s container: %v", name, r)
		}
	}()
	return start()
}
