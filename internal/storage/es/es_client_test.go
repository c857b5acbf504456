package es

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientConfig_Retries(t *testing.T) {
	assert.False(t, ClientConfig{}.elasticsearch().DisableRetry)
	assert.Zero(t, ClientConfig{}.elasticsearch().MaxRetries)
	assert.True(t, ClientConfig{MaxRetries: -1}.elasticsearch().DisableRetry)
	assert.Equal(t, 5, ClientConfig{MaxRetries: 5}.elasticsearch().MaxRetries)
}

func TestClientConfig_Credentials(t *testing.T) {
	cfg := ClientConfig{Addresses: []string{"http://a:9200"}, Username: "elastic"}.elasticsearch()
	assert.Empty(t, cfg.Username, "credentials need both user and password")

	cfg = ClientConfig{Username: "elastic", Password: "secret"}.elasticsearch()
	assert.Equal(t, "elastic", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
}
