package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ayudin/go-course-keeper/internal/adapter"
	"github.com/ayudin/go-course-keeper/internal/crypto"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/models"
)

const sessionCredentialKey = "session"

// ErrNoStoredSession is returned by RestoreSession when no usable session
// credential is stored on this device.
var ErrNoStoredSession = errors.New("no stored session")

type storedSession struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// AuthService handles login, session persistence through the secure
// credential store, and logout. The sync/cache core never touches
// credentials directly; it only sees the token installed on the remote
// source.
type AuthService struct {
	remote      adapter.RemoteSource
	credentials crypto.CredentialStore
	logger      *logger.Logger
}

func NewAuthService(remote adapter.RemoteSource, credentials crypto.CredentialStore, log *logger.Logger) *AuthService {
	return &AuthService{
		remote:      remote,
		credentials: credentials,
		logger:      log,
	}
}

// Login authenticates against the server, installs the session token on
// the remote source, and persists the session so it survives restarts.
// A failed persist is logged but does not fail the login.
func (a *AuthService) Login(ctx context.Context, login, password string) (models.User, error) {
	token, user, err := a.remote.Login(ctx, login, password)
	if err != nil {
		return models.User{}, classify(err)
	}

	payload, err := json.Marshal(storedSession{Token: token.SignedString, User: user})
	if err != nil {
		a.logger.Err(err).Msg("failed to encode session for storage")
		return user, nil
	}
	if !a.credentials.Save(sessionCredentialKey, payload) {
		a.logger.Warn().Msg("session not persisted, login will be required next start")
	}

	return user, nil
}

// RestoreSession loads the persisted session, installs its token on the
// remote source, and returns the stored account identity.
func (a *AuthService) RestoreSession(_ context.Context) (models.User, error) {
	payload, ok := a.credentials.Load(sessionCredentialKey)
	if !ok {
		return models.User{}, ErrNoStoredSession
	}

	var session storedSession
	if err := json.Unmarshal(payload, &session); err != nil {
		// Unreadable credential: drop it so the next start goes straight
		// to login instead of failing again.
		a.credentials.Delete(sessionCredentialKey)
		return models.User{}, fmt.Errorf("%w: %w", ErrNoStoredSession, err)
	}

	a.remote.SetToken(session.Token)
	return session.User, nil
}

// Logout deletes the persisted session and clears the installed token.
// Cache eviction on logout is the caller's concern (managers expose
// EvictCache).
func (a *AuthService) Logout(_ context.Context) {
	a.credentials.Delete(sessionCredentialKey)
	a.remote.SetToken("")
}
