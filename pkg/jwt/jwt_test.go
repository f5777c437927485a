package jwt

import (
	"testing"

	"github.com/YasinKhilji/ims-project/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewManager("test-secret", 1)
	userID := uuid.New()

	token, err := manager.Generate(userID, "alice", model.RoleAdmin)
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "ims-project", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 1).Generate(uuid.New(), "alice", model.RoleSales)
	require.NoError(t, err)

	_, err = NewManager("secret-b", 1).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	manager := NewManager("test-secret", 1)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := manager.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
