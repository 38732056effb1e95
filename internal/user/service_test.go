package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanmart/scanmart/internal/platform/httpx"
)

func TestCreateUserHashesPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "demo", "demo1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.NotEqual(t, "demo1234", u.PasswordHash)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "demo", "demo1234")
	require.NoError(t, err)

	u, err := svc.Authenticate(ctx, "demo", "demo1234")
	require.NoError(t, err)
	assert.Equal(t, "demo", u.Username)

	_, err = svc.Authenticate(ctx, "demo", "wrong")
	assert.Error(t, err)

	_, err = svc.Authenticate(ctx, "ghost", "demo1234")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDuplicateUsernameConflicts(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "demo", "demo1234")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "demo", "other")
	assert.ErrorIs(t, err, httpx.ErrConflict)
}
