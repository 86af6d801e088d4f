package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loanlens/loanlens/internal/config"
)

func TestRedacted(t *testing.T) {
	c := &config.Config{}
	c.CloudParse.Key = "cp-secret"
	c.Anthropic.Key = "sk-ant-secret"
	c.Store.DatabaseURL = "loanlens.db"

	r := redacted(c)

	assert.Equal(t, "[redacted]", r.CloudParse.Key)
	assert.Equal(t, "[redacted]", r.Anthropic.Key)
	assert.Equal(t, "loanlens.db", r.Store.DatabaseURL)
	// Original untouched.
	assert.Equal(t, "cp-secret", c.CloudParse.Key)
}

func TestRedactedEmptyKeys(t *testing.T) {
	r := redacted(&config.Config{})
	assert.Empty(t, r.CloudParse.Key)
	assert.Empty(t, r.Anthropic.Key)
}
