package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestID(t *testing.T) {
	prev := NewRequestID()
	for i := 0; i < 100; i++ {
		next := NewRequestID()

		_, err := ulid.ParseStrict(next)
		require.NoError(t, err)
		assert.Less(t, prev, next)
		prev = next
	}
}
