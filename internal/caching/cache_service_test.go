package caching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"localhost:6379", "localhost:6379"},
		{"redis://cache:6379", "cache:6379"},
		{"rediss://cache.example.com:6380", "cache.example.com:6380"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAddr(tt.in))
	}
}

func TestRevokedKey(t *testing.T) {
	assert.Equal(t, keyPrefix+"revoked:abc", revokedKey("abc"))
}

func TestRevokeToken_ExpiredIsNoop(t *testing.T) {
	// an already expired token never reaches redis
	svc := &redisCacheService{}
	assert.NoError(t, svc.RevokeToken(context.Background(), "abc", 0))
}

func TestDelete_NoKeys(t *testing.T) {
	svc := &redisCacheService{}
	assert.NoError(t, svc.Delete(context.Background()))
}
