package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/validation"
)

func TestRegisterStoresHashAndEncodedEmail(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	u, err := e.auth.Register(ctx, registerReq("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", u.Password)
	assert.False(t, u.IsLoggedIn)
	assert.Empty(t, u.SessionToken)

	stored, err := e.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.Equal(t, EncodeEmail("alice@example.com"), stored.Email)
	assert.Equal(t, "alice@example.com", DecodeEmail(stored.Email))
	assert.Equal(t, []string{EventUserRegistered}, e.pub.types())
	assert.Equal(t, "alice@example.com", e.pub.events[0].Email)
}

func TestRegisterConflicts(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	_, err := e.auth.Register(ctx, registerReq("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)

	_, err = e.auth.Register(ctx, registerReq("alice", "other@example.com", "secret1"))
	requireKind(t, err, apperror.KindConflict, apperror.UsernameAlreadyTaken)
	assert.Equal(t, `"alice" is already taken!`, err.Error())

	_, err = e.auth.Register(ctx, registerReq("alicia", "alice@example.com", "secret1"))
	requireKind(t, err, apperror.KindConflict, apperror.EmailAlreadyTaken)
	assert.Equal(t, `The email "alice@example.com" is already taken!`, err.Error())
}

func TestRegisterValidationHasNoSideEffects(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.auth.Register(context.Background(), registerReq("1alice", "alice@example.com", "secret1"))
	requireKind(t, err, apperror.KindValidation, apperror.Code(validation.NameMustHaveTheseSymbols))
	assert.Equal(t, validation.NameMustHaveTheseSymbols.Message(), err.Error())

	_, err = e.store.Users().GetByUsername(context.Background(), "1alice")
	assert.Error(t, err)
	assert.Empty(t, e.pub.types())
}

func TestLoginIssuesFreshTokens(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	u := e.loggedIn(t, "alice")
	require.True(t, u.IsLoggedIn)
	first := u.SessionToken
	require.NotEmpty(t, first)

	_, err := e.auth.Login(ctx, dto.LoginRequest{Email: dto.StrPtr("alice@example.com"), Password: dto.StrPtr("secret1")})
	requireKind(t, err, apperror.KindConflict, apperror.UserAlreadyLoggedIn)

	require.NoError(t, e.auth.Logout(ctx, u))
	again, err := e.auth.Login(ctx, dto.LoginRequest{Email: dto.StrPtr("alice@example.com"), Password: dto.StrPtr("secret1")})
	require.NoError(t, err)
	assert.NotEqual(t, first, again.SessionToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	_, err := e.auth.Register(ctx, registerReq("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)

	cases := map[string]dto.LoginRequest{
		"unknown email":  {Email: dto.StrPtr("nobody@example.com"), Password: dto.StrPtr("secret1")},
		"wrong password": {Email: dto.StrPtr("alice@example.com"), Password: dto.StrPtr("secret2")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.auth.Login(ctx, req)
			requireKind(t, err, apperror.KindValidation, apperror.InvalidCredentials)
		})
	}
}

func TestConcurrentLoginsOpenOneSession(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	_, err := e.auth.Register(ctx, registerReq("alice", "alice@example.com", "secret1"))
	require.NoError(t, err)

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.auth.Login(ctx, dto.LoginRequest{Email: dto.StrPtr("alice@example.com"), Password: dto.StrPtr("secret1")})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if apperror.KindOf(err) == apperror.KindConflict {
				conflicts++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)
}

func TestAuthorizeOwner(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.loggedIn(t, "alice")
	bob := e.loggedIn(t, "bob")
	bobToken := bob.SessionToken
	require.NoError(t, e.auth.Logout(ctx, bob))

	got, err := e.auth.AuthorizeOwner(ctx, alice.SessionToken, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	cases := []struct {
		name, token, username string
	}{
		{"unknown token", "not-a-token", "alice"},
		{"empty token", "", "alice"},
		{"logged out token", bobToken, "bob"},
		{"wrong owner", alice.SessionToken, "bob"},
		{"unknown owner", alice.SessionToken, "nobody"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := e.auth.AuthorizeOwner(ctx, c.token, c.username)
			requireKind(t, err, apperror.KindAuthentication, apperror.NotAuthorized)
			assert.Equal(t, "Not authorized interaction", err.Error())
		})
	}
}

func TestAuthenticateIgnoresStaleCache(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.loggedIn(t, "alice")
	token := alice.SessionToken

	// Remove on the fake cache fails, so the entry outlives the session.
	require.NoError(t, e.auth.Logout(ctx, alice))
	username, ok, _ := e.sessions.Lookup(ctx, token)
	require.True(t, ok)
	require.Equal(t, "alice", username)

	_, err := e.auth.Authenticate(ctx, token)
	requireKind(t, err, apperror.KindAuthentication, apperror.NotAuthorized)
}
