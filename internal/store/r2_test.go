package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestNewRequiresAllConfigFields(t *testing.T) {
	cases := []Config{
		{},
		{Endpoint: "https://example.r2.cloudflarestorage.com"},
		{Endpoint: "https://example.r2.cloudflarestorage.com", AccessKeyID: "key", SecretKey: "secret"},
	}
	for _, cfg := range cases {
		_, err := New(context.Background(), cfg)
		assert.Error(t, err)
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.True(t, isNotFound(fmt.Errorf("get: %w", &types.NoSuchKey{})))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))

	assert.False(t, isNotFound(nil))
	assert.False(t, isNotFound(errors.New("connection refused")))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
}
