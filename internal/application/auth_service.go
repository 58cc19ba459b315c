package application

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/validation"
)

// AuthService owns registration and the per-user session state machine.
type AuthService struct {
	Users    repo.UserRepository
	Hasher   PasswordHasher
	Sessions SessionCache
	Logger   *logrus.Logger
	NewToken func() string
	events   emitter
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, sessions SessionCache, pub EventPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:    users,
		Hasher:   hasher,
		Sessions: sessions,
		Logger:   logger,
		NewToken: uuid.NewString,
		events:   emitter{pub: pub, logger: logger},
	}
}

// EncodeEmail is the reversible lookup key stored in place of the address.
func EncodeEmail(email string) string {
	return base64.StdEncoding.EncodeToString([]byte(email))
}

// DecodeEmail reverses EncodeEmail; undecodable input is returned unchanged.
func DecodeEmail(encoded string) string {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return encoded
	}
	return string(b)
}

func validationFailure(res validation.Result) error {
	return apperror.ValidationMessage(apperror.Code(res), res.Message())
}

// storeErr keeps apperror values and hides everything else behind Internal.
func storeErr(err error) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return apperror.Internal(err)
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, error) {
	if res := validation.ValidateRegister(req); !res.OK() {
		return nil, validationFailure(res)
	}
	u := &entity.User{Username: *req.Username, Email: EncodeEmail(*req.Email)}

	if err := s.checkUsername(ctx, u.Username); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, u.Email); err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(*req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.Password = hash

	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// lost a race with a concurrent registration; report which key collided
			if cerr := s.checkUsername(ctx, u.Username); cerr != nil {
				return nil, cerr
			}
			return nil, apperror.Conflict(apperror.EmailAlreadyTaken, *req.Email)
		}
		return nil, storeErr(err)
	}

	s.events.emit(ctx, Event{Type: EventUserRegistered, Username: u.Username, Email: *req.Email, ResourceID: u.ID})
	return u, nil
}

func (s *AuthService) checkUsername(ctx context.Context, username string) error {
	_, err := s.Users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return apperror.Conflict(apperror.UsernameAlreadyTaken, username)
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return storeErr(err)
	}
}

func (s *AuthService) checkEmail(ctx context.Context, encoded string) error {
	existing, err := s.Users.GetByEmail(ctx, encoded)
	switch {
	case err == nil:
		return apperror.Conflict(apperror.EmailAlreadyTaken, DecodeEmail(existing.Email))
	case errors.Is(err, repo.ErrNotFound):
		return nil
	default:
		return storeErr(err)
	}
}

// Login verifies credentials and opens the user's only session.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*entity.User, error) {
	if res := validation.ValidateLogin(req); !res.OK() {
		return nil, validationFailure(res)
	}
	u, err := s.Users.GetByEmail(ctx, EncodeEmail(*req.Email))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, storeErr(err)
	}
	if u == nil || !s.Hasher.Verify(u.Password, *req.Password) {
		return nil, apperror.Validation(apperror.InvalidCredentials)
	}
	if u.IsLoggedIn {
		return nil, apperror.Conflict(apperror.UserAlreadyLoggedIn)
	}

	token := s.NewToken()
	if err := s.Users.StartSession(ctx, u.ID, token); err != nil {
		if errors.Is(err, repo.ErrSessionActive) {
			return nil, apperror.Conflict(apperror.UserAlreadyLoggedIn)
		}
		return nil, storeErr(err)
	}
	u.SessionToken = token
	u.IsLoggedIn = true

	if s.Sessions != nil {
		if err := s.Sessions.Put(ctx, token, u.Username); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session cache write failed")
		}
	}
	s.events.emit(ctx, Event{Type: EventUserLoggedIn, Username: u.Username, ResourceID: u.ID})
	return u, nil
}

// Logout clears the session; the old token stops authenticating immediately.
func (s *AuthService) Logout(ctx context.Context, u *entity.User) error {
	if err := s.Users.EndSession(ctx, u.ID); err != nil {
		return storeErr(err)
	}
	if s.Sessions != nil && u.SessionToken != "" {
		if err := s.Sessions.Remove(ctx, u.SessionToken); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("session cache delete failed")
		}
	}
	u.SessionToken = ""
	u.IsLoggedIn = false
	s.events.emit(ctx, Event{Type: EventUserLoggedOut, Username: u.Username, ResourceID: u.ID})
	return nil
}

// Authenticate resolves a session token to a logged-in user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperror.Authentication()
	}
	if u, ok := s.fromCache(ctx, token); ok {
		return u, nil
	}
	u, err := s.Users.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Authentication()
		}
		return nil, storeErr(err)
	}
	if !u.IsLoggedIn {
		return nil, apperror.Authentication()
	}
	return u, nil
}

// fromCache trusts the cache only as an index: the stored user must still
// hold the same token.
func (s *AuthService) fromCache(ctx context.Context, token string) (*entity.User, bool) {
	if s.Sessions == nil {
		return nil, false
	}
	username, ok, err := s.Sessions.Lookup(ctx, token)
	if err != nil || !ok {
		return nil, false
	}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || !u.IsLoggedIn || u.SessionToken != token {
		return nil, false
	}
	return u, true
}

// AuthorizeOwner authenticates token and requires it to belong to username.
// A mismatch is indistinguishable from an invalid token.
func (s *AuthService) AuthorizeOwner(ctx context.Context, token, username string) (*entity.User, error) {
	u, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if u.Username != username {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Debug("owner mismatch")
		}
		return nil, apperror.Authentication()
	}
	return u, nil
}
