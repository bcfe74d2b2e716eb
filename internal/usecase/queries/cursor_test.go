//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"courtdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 3, 10, 18, 30, 45, 123456000, time.UTC)

	cursor := queries.EncodeAfterCursor(at, id)
	gotAt, gotID, err := queries.DecodeAfterCursor(cursor)
	require.NoError(t, err)

	assert.Equal(t, at.UnixMicro(), gotAt.UnixMicro())
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursor(t *testing.T) {
	t.Run("empty cursor", func(t *testing.T) {
		_, _, err := queries.DecodeAfterCursor("")
		require.Error(t, err)
	})

	t.Run("not base64", func(t *testing.T) {
		_, _, err := queries.DecodeAfterCursor("not base64 at all!!!")
		require.Error(t, err)
	})

	t.Run("unsupported version", func(t *testing.T) {
		raw := base64.URLEncoding.EncodeToString([]byte("v2:123-" + uuid.New().String()))
		_, _, err := queries.DecodeAfterCursor(raw)
		require.ErrorContains(t, err, "unsupported cursor version")
	})

	t.Run("missing separator", func(t *testing.T) {
		raw := base64.URLEncoding.EncodeToString([]byte("v1:123456"))
		_, _, err := queries.DecodeAfterCursor(raw)
		require.Error(t, err)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		raw := base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.New().String()))
		_, _, err := queries.DecodeAfterCursor(raw)
		require.Error(t, err)
	})

	t.Run("bad uuid", func(t *testing.T) {
		raw := base64.URLEncoding.EncodeToString([]byte("v1:123456-not-a-uuid"))
		_, _, err := queries.DecodeAfterCursor(raw)
		require.Error(t, err)
	})
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, queries.ValidateLimit(0))
	assert.Equal(t, 20, queries.ValidateLimit(-5))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit+1))
}
