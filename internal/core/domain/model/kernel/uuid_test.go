package kernel_test

import (
	"testing"

	"exoprotrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lotID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsZero())
	assert.False(t, id1.IsEqual(id2))
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
}

func TestUUIDFromString(t *testing.T) {
	t.Run("accepts the common textual forms", func(t *testing.T) {
		for _, in := range []string{
			lotID,
			"{" + lotID + "}",
			"urn:uuid:" + lotID,
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)
			require.NoError(t, err, in)
			assert.Equal(t, lotID, id.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"", "lot-1", "550e8400-e29b-41d4-a716", lotID + "-extra"} {
			_, err := kernel.UUIDFromString(in)
			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("nil uuid parses but does not validate", func(t *testing.T) {
		id, err := kernel.UUIDFromString(uuid.Nil.String())
		require.NoError(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("valid bytes", func(t *testing.T) {
		raw := uuid.MustParse(lotID)
		id, err := kernel.UUIDFromBytes(raw[:])
		require.NoError(t, err)
		assert.Equal(t, lotID, id.String())
	})

	t.Run("short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})
		assert.ErrorContains(t, err, "invalid UUID format")
	})

	t.Run("nil bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestMustUUID(t *testing.T) {
	raw := uuid.MustParse(lotID)

	id := kernel.MustUUID(raw)

	assert.Equal(t, raw, id.Bytes())
	assert.True(t, kernel.MustUUID(uuid.Nil).IsZero())
}

func TestUUID_Bytes_DoesNotLeakState(t *testing.T) {
	original := kernel.NewUUID()
	before := original.String()

	b := original.Bytes()
	for i := range b {
		b[i] = 0xFF
	}

	assert.Equal(t, before, original.String())
}
