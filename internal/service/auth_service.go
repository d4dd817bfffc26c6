package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AdminUsername is the account seeded on first start.
const AdminUsername model.Username = "admin"

// AuthOptions configures the authentication store.
type AuthOptions struct {
	AdminPassword string
	BcryptCost    int
}

type authState struct {
	Users   []model.User  `json:"users"`
	Session model.Session `json:"session"`
}

func (s authState) clone() authState {
	return authState{Users: slices.Clone(s.Users), Session: s.Session}
}

func (s authState) find(username model.Username) (model.User, bool) {
	idx := slices.IndexFunc(s.Users, func(u model.User) bool { return u.Username == username })
	if idx < 0 {
		return model.User{}, false
	}
	return s.Users[idx], true
}

// authService implements AuthService.
type authService struct {
	mu     sync.RWMutex
	state  authState
	cost   int
	repo   repository.StateRepository
	logger zerolog.Logger
}

// NewAuthService restores users and the session from repo, seeding the admin
// account when it is missing.
func NewAuthService(ctx context.Context, repo repository.StateRepository, opts AuthOptions, logger zerolog.Logger) (AuthService, error) {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	s := &authService{
		cost:   cost,
		repo:   repo,
		logger: logger.With().Str("service", "auth").Logger(),
	}

	var state authState
	found, err := repo.Load(ctx, repository.KeyAuth, &state)
	if err != nil {
		return nil, fmt.Errorf("failed to load auth state: %w", err)
	}

	dirty := !found
	if _, ok := state.find(AdminUsername); !ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		state.Users = append([]model.User{{Username: AdminUsername, PasswordHash: string(hash), IsAdmin: true}}, state.Users...)
		dirty = true
		s.logger.Info().Msg("seeded admin account")
	}

	if state.Session.IsAuthenticated {
		if _, ok := state.find(state.Session.Username); !ok {
			s.logger.Warn().Str("username", string(state.Session.Username)).Msg("dropping session of unknown user")
			state.Session = model.Session{}
			dirty = true
		}
	}

	if dirty {
		if err := repo.Save(ctx, repository.KeyAuth, state); err != nil {
			return nil, fmt.Errorf("failed to save auth state: %w", err)
		}
	}
	s.state = state

	s.logger.Info().
		Int("users", len(state.Users)).
		Bool("session", state.Session.IsAuthenticated).
		Msg("auth store ready")

	return s, nil
}

func (s *authService) commit(ctx context.Context, next authState) error {
	if err := s.repo.Save(ctx, repository.KeyAuth, next); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist auth state")
		return fmt.Errorf("failed to save auth state: %w", err)
	}
	s.state = next
	return nil
}

func (s *authService) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.state.find(model.Username(username))
	if !ok {
		s.logger.Debug().Str("username", username).Msg("login for unknown user")
		return model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Debug().Str("username", username).Msg("password mismatch")
			return model.ErrInvalidCredentials
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	next := s.state.clone()
	next.Session = model.Session{IsAuthenticated: true, IsAdmin: user.IsAdmin, Username: user.Username}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Bool("admin", user.IsAdmin).Msg("user logged in")
	return nil
}

func (s *authService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return model.ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.find(model.Username(username)); ok {
		return model.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{Username: model.Username(username), PasswordHash: string(hash)}
	next := s.state.clone()
	next.Users = append(next.Users, user)
	next.Session = model.Session{IsAuthenticated: true, Username: user.Username}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	return nil
}

func (s *authService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Session.IsAuthenticated {
		return nil
	}

	previous := s.state.Session.Username
	next := s.state.clone()
	next.Session = model.Session{}
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.logger.Info().Str("username", string(previous)).Msg("user logged out")
	return nil
}

func (s *authService) Session() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Session
}

func (s *authService) Users() []model.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.UserInfo, len(s.state.Users))
	for i, u := range s.state.Users {
		users[i] = model.UserInfo{Username: u.Username, IsAdmin: u.IsAdmin}
	}
	return users
}
