package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/selimv/vitrine/internal/dbx"
	"github.com/selimv/vitrine/internal/kvstore"
	"github.com/selimv/vitrine/internal/logging"
	"github.com/selimv/vitrine/internal/models"
)

// Key-value store keys for the persisted session.
const (
	tokenKey = "auth:token"
	userKey  = "auth:user"
)

// SessionService authenticates, holds and persists exactly one active
// session.
//
// Contract:
//   - Login / Signup: verify or create an account, mint a token, persist the
//     session. Credential failures are reported errors; persistence failures
//     are logged but leave the in-memory session active.
//   - Logout: clear memory and storage; idempotent, never fails.
//   - UpdateUser: shallow-merge a profile edit into the current user.
//   - Restore: reinstate the session persisted by a previous run, if any.
//   - Current: snapshot of the active session, nil when logged out.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Signup(ctx context.Context, name, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.UserPatch) (*models.User, error)
	Restore(ctx context.Context) error
	Current() *models.Session
}

type sessionService struct {
	db       *sql.DB
	accounts *accountDirectory
	log      logging.Logger
	secret   []byte
	latency  time.Duration

	mu      sync.Mutex
	session *models.Session
}

// NewSessionService constructs a SessionService persisting through the given
// database. secret signs the session tokens.
func NewSessionService(db *sql.DB, log logging.Logger, secret []byte, latency time.Duration) SessionService {
	return &sessionService{
		db:       db,
		accounts: newAccountDirectory(),
		log:      log,
		secret:   secret,
		latency:  latency,
	}
}

func (s *sessionService) getStore() kvstore.Store {
	return kvstore.NewSQLiteStore(s.db)
}

// Login authenticates against the account directory (case-insensitive email)
// and opens a session.
func (s *sessionService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	user, err := s.accounts.authenticate(email, password)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, *user)
}

// Signup creates a new account and then behaves like a successful login.
func (s *sessionService) Signup(ctx context.Context, name, email, password string) (*models.Session, error) {
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	user, err := s.accounts.create(name, email, password)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, *user)
}

// Logout drops the in-memory session and removes the persisted entries.
// It always succeeds, even when nobody is logged in.
func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := kvstore.NewSQLiteStore(tx)
		if err := store.Delete(ctx, tokenKey); err != nil {
			return err
		}
		return store.Delete(ctx, userKey)
	})
	if err != nil {
		s.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}
	return nil
}

// UpdateUser shallow-merges patch into the current user, persists the new
// snapshot, and keeps the account directory in line so a later login sees the
// edit. Products previously created under the old display name keep their
// vendor field as-is.
func (s *sessionService) UpdateUser(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	updated := patch.Apply(s.session.User)
	s.session.User = updated
	s.mu.Unlock()

	s.accounts.updateProfile(updated.ID, patch)

	if err := s.persistUser(ctx, updated); err != nil {
		s.log.Warn(ctx, "failed to persist updated user", "error", err)
	}
	return &updated, nil
}

// Restore reads the persisted token and user, reinstating the session when
// both are present. Anything else (fresh install, partial write, corrupt
// record, read failure) leaves the service logged out; it never fails.
func (s *sessionService) Restore(ctx context.Context) error {
	store := s.getStore()

	tokenData, err := store.Get(ctx, tokenKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token", "error", err)
		return nil
	}
	if tokenData == nil {
		return nil
	}

	userData, err := store.Get(ctx, userKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted user", "error", err)
		return nil
	}
	if userData == nil {
		return nil
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		s.log.Warn(ctx, "persisted user is corrupt, staying logged out", "error", err)
		return nil
	}

	s.mu.Lock()
	s.session = &models.Session{Token: string(tokenData), User: user}
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the active session, or nil when logged out.
func (s *sessionService) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	out := *s.session
	return &out
}

// openSession mints a token, persists the session and swaps it in. A
// persistence failure is logged but does not invalidate the session; the
// accepted risk is that it may not survive a restart.
func (s *sessionService) openSession(ctx context.Context, user models.User) (*models.Session, error) {
	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	session := models.Session{Token: token, User: user}

	if err := s.persistSession(ctx, session); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err)
	}

	s.mu.Lock()
	s.session = &session
	s.mu.Unlock()

	out := session
	return &out, nil
}

// mintToken issues an HS256 JWT for the user. Consumers treat it as an
// opaque string; there is no expiry in this design.
func (s *sessionService) mintToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  userID,
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString(s.secret)
}

// persistSession writes token and user in a single transaction so storage
// never holds one without the other.
func (s *sessionService) persistSession(ctx context.Context, session models.Session) error {
	userData, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := kvstore.NewSQLiteStore(tx)
		if err := store.Set(ctx, tokenKey, []byte(session.Token)); err != nil {
			return err
		}
		return store.Set(ctx, userKey, userData)
	})
}

func (s *sessionService) persistUser(ctx context.Context, user models.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}
	return s.getStore().Set(ctx, userKey, userData)
}
