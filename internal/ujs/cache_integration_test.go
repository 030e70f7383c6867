//go:build integration

package ujs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/pkg/testutil/containers"
)

func TestRedisCache(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	cache := NewRedisCache(rc.Client)
	ctx := context.Background()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, err := cache.Get(ctx, "name|smith|jane|")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "name|smith|jane|", `{"CP":{}}`, time.Minute))
		got, err := cache.Get(ctx, "name|smith|jane|")
		require.NoError(t, err)
		assert.Equal(t, `{"CP":{}}`, got)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "docket|CP-1", "{}", 50*time.Millisecond))
		require.Eventually(t, func() bool {
			_, err := cache.Get(ctx, "docket|CP-1")
			return errors.Is(err, ErrCacheMiss)
		}, 2*time.Second, 25*time.Millisecond)
	})
}
