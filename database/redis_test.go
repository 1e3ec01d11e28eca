package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url")
	assert.ErrorContains(t, err, "invalid redis url")
}

func TestClose_Nil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
