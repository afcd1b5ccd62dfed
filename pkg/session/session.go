// Package session holds the client-side state that outlives a single command:
// the signed-in user and the marker for a shift that has been started but
// not finished.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/db"
)

const (
	UserKey          = "shifttrack_auth_user"
	ActiveSessionKey = "shifttrack_active_session_v1"
)

// Session is the in-memory view of the persisted state. Load it once at
// startup; every mutation writes through to the store.
type Session struct {
	store  db.KeyValueStore
	logger *zap.Logger

	user   *model.User
	active *model.ActiveSession
}

// New creates an empty session over store. Call Load to read persisted state.
func New(store db.KeyValueStore, logger *zap.Logger) *Session {
	return &Session{store: store, logger: logger}
}

// Load reads both keys from the store. A value that cannot be decoded is
// treated as absent.
func (s *Session) Load(ctx context.Context) error {
	s.user = nil
	s.active = nil

	var user model.User
	ok, err := s.read(ctx, UserKey, &user)
	if err != nil {
		return err
	}
	if ok {
		s.user = &user
	}

	var active model.ActiveSession
	ok, err = s.read(ctx, ActiveSessionKey, &active)
	if err != nil {
		return err
	}
	if ok && !active.ISO.IsZero() {
		s.active = &active
	}

	return nil
}

func (s *Session) read(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("Ignoring unreadable session value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Session) write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// User returns the signed-in user, or nil
func (s *Session) User() *model.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SaveUser replaces the signed-in user
func (s *Session) SaveUser(ctx context.Context, user model.User) error {
	if err := s.write(ctx, UserKey, user); err != nil {
		return err
	}
	s.user = &user
	return nil
}

// SubaccountID returns the signed-in user's tenant, or "" when there is none
func (s *Session) SubaccountID() string {
	if s.user == nil {
		return ""
	}
	return s.user.SubaccountID
}

// ActiveSession returns the open-shift marker, or nil
func (s *Session) ActiveSession() *model.ActiveSession {
	if s.active == nil {
		return nil
	}
	a := *s.active
	return &a
}

// SaveActiveSession records that a shift has been started
func (s *Session) SaveActiveSession(ctx context.Context, marker model.ActiveSession) error {
	if err := s.write(ctx, ActiveSessionKey, marker); err != nil {
		return err
	}
	s.active = &marker
	return nil
}

// ClearActiveSession forgets the open-shift marker
func (s *Session) ClearActiveSession(ctx context.Context) error {
	if err := s.store.Delete(ctx, ActiveSessionKey); err != nil {
		return fmt.Errorf("failed to clear %s: %w", ActiveSessionKey, err)
	}
	s.active = nil
	return nil
}

// Clear signs out: both the user and any open-shift marker are removed
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("failed to clear %s: %w", UserKey, err)
	}
	s.user = nil
	return s.ClearActiveSession(ctx)
}
