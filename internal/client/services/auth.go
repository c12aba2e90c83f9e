// Package services contains application services for the localauth client.
// This file defines the authentication service: signup, login, logout and
// restoring the persisted session of the device's current user.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/localauth/internal/client/models"
	"github.com/dmitrijs2005/localauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/localauth/internal/common"
	"github.com/dmitrijs2005/localauth/internal/cryptox"
	"github.com/dmitrijs2005/localauth/internal/logging"
	"github.com/google/uuid"
)

// Well-known keys in the metadata store.
const (
	KeyUsersDB     = "auth_users_db"
	KeyCurrentUser = "auth_current_user"
)

// State is the lifecycle of the session slot.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AuthService owns the device's account list and its single current session.
//
// Contract:
//   - RestoreSession: load the persisted session once at startup. Failures
//     leave the service Ready with no session; the returned error is only
//     worth logging.
//   - Signup: create an account and sign it in. Fails with
//     common.ErrDuplicateAccount when the email is taken.
//   - Login: sign in an existing account. Fails with
//     common.ErrInvalidCredentials whether the email or the password is wrong.
//   - Logout: forget the current session. Idempotent.
//
// Storage failures are reported as common.ErrPersistence, undecodable stored
// data as common.ErrCorruptState. Signup and Login reject overlapping calls
// with common.ErrOperationInProgress; Logout is never rejected.
type AuthService interface {
	RestoreSession(ctx context.Context) error
	Signup(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	CurrentUser() (models.User, bool)
	State() State
	IsReady() bool
}

type authService struct {
	repo   metadata.Repository
	hasher cryptox.Hasher
	log    logging.Logger
	newID  func() string

	busy atomic.Bool

	mu    sync.RWMutex
	state State
	user  *models.User
}

type Option func(*authService)

func WithHasher(h cryptox.Hasher) Option {
	return func(a *authService) { a.hasher = h }
}

func WithLogger(l logging.Logger) Option {
	return func(a *authService) { a.log = l }
}

// WithIDGenerator replaces the account id source (uuid v4 by default).
func WithIDGenerator(fn func() string) Option {
	return func(a *authService) { a.newID = fn }
}

// NewAuthService constructs an AuthService over the given key-value store.
// If repo implements metadata.Transactor, signup runs in a transaction.
func NewAuthService(repo metadata.Repository, opts ...Option) AuthService {
	a := &authService{
		repo:   repo,
		hasher: cryptox.SHA256Hasher{},
		log:    logging.Discard(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With("component", "auth")
	return a
}

func (a *authService) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *authService) IsReady() bool {
	return a.State() == StateReady
}

func (a *authService) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

func (a *authService) setSession(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
	a.state = StateReady
}

// RestoreSession performs the single Uninitialized -> Loading -> Ready
// transition. Later calls are no-ops.
func (a *authService) RestoreSession(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateUninitialized {
		a.mu.Unlock()
		return nil
	}
	a.state = StateLoading
	a.mu.Unlock()

	raw, err := a.repo.Get(ctx, KeyCurrentUser)
	if err != nil {
		a.log.Error(ctx, "failed to read persisted session", "error", err)
		a.setSession(nil)
		return persistenceError(err)
	}
	if raw == nil {
		a.setSession(nil)
		return nil
	}

	u, err := models.DecodeSession(raw)
	if err != nil {
		a.log.Error(ctx, "ignoring unreadable persisted session", "error", err)
		a.setSession(nil)
		return err
	}

	a.log.Debug(ctx, "session restored", "user_id", u.ID)
	a.setSession(&u)
	return nil
}

func (a *authService) Signup(ctx context.Context, name, email, password string) error {
	if !a.busy.CompareAndSwap(false, true) {
		return common.ErrOperationInProgress
	}
	defer a.busy.Store(false)

	name = models.NormalizeName(name)
	email = models.NormalizeEmail(email)
	password = models.NormalizePassword(password)

	var session models.User
	var err error
	if tx, ok := a.repo.(metadata.Transactor); ok {
		err = tx.WithTx(ctx, func(ctx context.Context, repo metadata.Repository) error {
			session, err = a.createAccount(ctx, repo, name, email, password, false)
			return err
		})
	} else {
		session, err = a.createAccount(ctx, a.repo, name, email, password, true)
	}
	if err != nil {
		if !errors.Is(err, common.ErrDuplicateAccount) {
			a.log.Error(ctx, "signup failed", "error", err)
		}
		return err
	}

	a.log.Info(ctx, "account created", "user_id", session.ID)
	a.setSession(&session)
	return nil
}

// createAccount appends the new account and stores its session. Without a
// transaction (recheck) the database is read again right before the write,
// and the previous database is put back if storing the session fails.
func (a *authService) createAccount(ctx context.Context, repo metadata.Repository, name, email, password string, recheck bool) (models.User, error) {
	prevRaw, db, err := loadUsers(ctx, repo)
	if err != nil {
		return models.User{}, err
	}
	if db.FindByEmail(email) >= 0 {
		return models.User{}, common.ErrDuplicateAccount
	}

	stored := models.StoredUser{
		ID:       a.newID(),
		Name:     name,
		Email:    email,
		Password: a.hasher.Hash(password),
	}

	if recheck {
		prevRaw, db, err = loadUsers(ctx, repo)
		if err != nil {
			return models.User{}, err
		}
		if db.FindByEmail(email) >= 0 {
			return models.User{}, common.ErrDuplicateAccount
		}
	}

	data, err := models.EncodeUserDatabase(append(db, stored))
	if err != nil {
		return models.User{}, fmt.Errorf("failed to encode user database: %w", err)
	}
	if err := repo.Set(ctx, KeyUsersDB, data); err != nil {
		return models.User{}, persistenceError(err)
	}

	session := stored.Public()
	if err := storeSession(ctx, repo, session); err != nil {
		if recheck {
			a.restoreUsers(ctx, repo, prevRaw)
		}
		return models.User{}, err
	}
	return session, nil
}

func (a *authService) restoreUsers(ctx context.Context, repo metadata.Repository, prevRaw []byte) {
	var err error
	if prevRaw == nil {
		err = repo.Delete(ctx, KeyUsersDB)
	} else {
		err = repo.Set(ctx, KeyUsersDB, prevRaw)
	}
	if err != nil {
		a.log.Error(ctx, "failed to roll back user database", "error", err)
	}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	if !a.busy.CompareAndSwap(false, true) {
		return common.ErrOperationInProgress
	}
	defer a.busy.Store(false)

	email = models.NormalizeEmail(email)
	password = models.NormalizePassword(password)

	_, db, err := loadUsers(ctx, a.repo)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}

	var found *models.StoredUser
	for i := range db {
		if models.NormalizeEmail(db[i].Email) == email && a.hasher.Verify(password, db[i].Password) {
			found = &db[i]
			break
		}
	}
	if found == nil {
		a.log.Info(ctx, "login rejected")
		return common.ErrInvalidCredentials
	}

	session := found.Public()
	if err := storeSession(ctx, a.repo, session); err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}

	a.log.Info(ctx, "logged in", "user_id", session.ID)
	a.setSession(&session)
	return nil
}

// Logout always clears the in-memory session, even while another operation
// is in flight. A failure to remove the persisted key is still returned; the
// session would reappear on restore.
func (a *authService) Logout(ctx context.Context) error {
	err := a.repo.Delete(ctx, KeyCurrentUser)
	a.setSession(nil)
	if err != nil {
		a.log.Warn(ctx, "failed to remove persisted session", "error", err)
		return persistenceError(err)
	}

	a.log.Info(ctx, "logged out")
	return nil
}

// loadUsers returns the raw stored bytes alongside the decoded database.
func loadUsers(ctx context.Context, repo metadata.Repository) ([]byte, models.UserDatabase, error) {
	raw, err := repo.Get(ctx, KeyUsersDB)
	if err != nil {
		return nil, nil, persistenceError(err)
	}
	db, err := models.DecodeUserDatabase(raw)
	if err != nil {
		return nil, nil, err
	}
	return raw, db, nil
}

func storeSession(ctx context.Context, repo metadata.Repository, u models.User) error {
	data, err := models.EncodeSession(u)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := repo.Set(ctx, KeyCurrentUser, data); err != nil {
		return persistenceError(err)
	}
	return nil
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrPersistence, err)
}
