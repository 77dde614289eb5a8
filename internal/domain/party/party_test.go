package party

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCounterparty(t *testing.T) {
	t.Run("creates counterparty with id and timestamps", func(t *testing.T) {
		c, err := NewCounterparty("Acme Ltd", "DE89370400440532013000", "COBADEFF", "1 Main St", "billing@acme.example")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.False(t, c.CreatedAt.IsZero())
		assert.Equal(t, c.CreatedAt, c.UpdatedAt)
		assert.Equal(t, "Acme Ltd", c.Name)
		assert.Nil(t, c.DeletedAt)
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		c, err := NewCounterparty("Acme Ltd", "ACC-1", "BC-1", "", "")
		require.NoError(t, err)
		assert.Empty(t, c.Address)
		assert.Empty(t, c.Email)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := NewCounterparty("", "ACC-1", "BC-1", "", "")
		assert.Error(t, err)
		_, err = NewCounterparty("Acme", "", "BC-1", "", "")
		assert.Error(t, err)
		_, err = NewCounterparty("Acme", "ACC-1", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects malformed email when present", func(t *testing.T) {
		_, err := NewCounterparty("Acme", "ACC-1", "BC-1", "", "not-an-email")
		assert.Error(t, err)
	})
}

func TestCounterpartySoftDelete(t *testing.T) {
	c, err := NewCounterparty("Acme", "ACC-1", "BC-1", "", "")
	require.NoError(t, err)

	now := time.Now().Add(time.Minute)
	c.MarkDeleted(now)

	assert.True(t, c.IsDeleted())
	assert.Equal(t, now, *c.DeletedAt)
	assert.Equal(t, now, c.UpdatedAt, "soft delete bumps the update timestamp")
}

func TestRoleKind(t *testing.T) {
	assert.Equal(t, shared.KindCreditor, RoleCreditor.Kind())
	assert.Equal(t, shared.KindDebtor, RoleDebtor.Kind())
}
