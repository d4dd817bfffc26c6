package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, repo repository.StateRepository) AuthService {
	t.Helper()

	svc, err := NewAuthService(context.Background(), repo, AuthOptions{AdminPassword: "admin", BcryptCost: bcrypt.MinCost}, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestAuthService_SeedsAdmin(t *testing.T) {
	svc := newTestAuth(t, repository.NewMemoryRepository())

	assert.Equal(t, []model.UserInfo{{Username: "admin", IsAdmin: true}}, svc.Users())
	assert.Equal(t, model.Session{}, svc.Session())
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name            string
		username        string
		password        string
		expectedErr     error
		expectedSession model.Session
	}{
		{
			name:            "admin",
			username:        "admin",
			password:        "admin",
			expectedSession: model.Session{IsAuthenticated: true, IsAdmin: true, Username: "admin"},
		},
		{
			name:            "regular user",
			username:        "alice",
			password:        "secret",
			expectedSession: model.Session{IsAuthenticated: true, Username: "alice"},
		},
		{
			name:        "wrong password",
			username:    "alice",
			password:    "wrong",
			expectedErr: model.ErrInvalidCredentials,
		},
		{
			name:        "unknown user",
			username:    "carol",
			password:    "secret",
			expectedErr: model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc := newTestAuth(t, repository.NewMemoryRepository())
			require.NoError(t, svc.Register(ctx, "alice", "secret"))
			require.NoError(t, svc.Logout(ctx))

			err := svc.Login(ctx, tt.username, tt.password)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.False(t, svc.Session().IsAuthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSession, svc.Session())
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth(t, repository.NewMemoryRepository())

	assert.ErrorIs(t, svc.Register(ctx, "admin", "x"), model.ErrUsernameTaken)
	assert.False(t, svc.Session().IsAuthenticated)

	require.NoError(t, svc.Register(ctx, "newuser", "pw"))
	assert.Equal(t, model.Session{IsAuthenticated: true, Username: "newuser"}, svc.Session())

	assert.ErrorIs(t, svc.Register(ctx, "newuser", "other"), model.ErrUsernameTaken)
	assert.Equal(t, model.Username("newuser"), svc.Session().Username)

	assert.ErrorIs(t, svc.Register(ctx, "", "pw"), model.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Register(ctx, "bob", ""), model.ErrInvalidCredentials)

	assert.Len(t, svc.Users(), 2)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuth(t, repository.NewMemoryRepository())

	require.NoError(t, svc.Login(ctx, "admin", "admin"))
	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, model.Session{}, svc.Session())

	require.NoError(t, svc.Logout(ctx))
}

func TestAuthService_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	svc := newTestAuth(t, repo)
	require.NoError(t, svc.Register(ctx, "alice", "secret"))

	restarted := newTestAuth(t, repo)
	assert.Equal(t, model.Session{IsAuthenticated: true, Username: "alice"}, restarted.Session())
	assert.Len(t, restarted.Users(), 2)

	require.NoError(t, restarted.Logout(ctx))
	require.NoError(t, restarted.Login(ctx, "alice", "secret"))
}

func TestAuthService_DropsDanglingSession(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.Save(ctx, repository.KeyAuth, authState{
		Session: model.Session{IsAuthenticated: true, Username: "ghost"},
	}))

	svc := newTestAuth(t, repo)
	assert.Equal(t, model.Session{}, svc.Session())
	assert.Equal(t, []model.UserInfo{{Username: "admin", IsAdmin: true}}, svc.Users())
}

func TestAuthService_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStateRepository)
	repo.On("Load", mock.Anything, repository.KeyAuth, mock.Anything).Return(false, nil)
	repo.On("Save", mock.Anything, repository.KeyAuth, mock.Anything).Return(nil).Once()
	repo.On("Save", mock.Anything, repository.KeyAuth, mock.Anything).Return(errors.New("read-only")).Once()

	svc := newTestAuth(t, repo)

	err := svc.Register(ctx, "alice", "secret")
	require.Error(t, err)
	assert.False(t, svc.Session().IsAuthenticated)
	assert.Len(t, svc.Users(), 1)
	repo.AssertExpectations(t)
}
