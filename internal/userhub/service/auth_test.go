package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
	"github.com/cobaltlabs/userhub/internal/userhub/store"
	"github.com/cobaltlabs/userhub/internal/userhub/store/drivers/sqlite"
	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/cryptox"
	"github.com/cobaltlabs/userhub/pkg/idx"
	"github.com/cobaltlabs/userhub/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestTokens() *jwtx.Service {
	return &jwtx.Service{
		Issuer:  "userhub-test",
		Access:  jwtx.KeyConfig{Secret: "test-access-secret", TTL: time.Minute},
		Refresh: jwtx.KeyConfig{Secret: "test-refresh-secret", TTL: time.Hour},
	}
}

func newAuthService(s store.Store) *AuthService {
	return &AuthService{
		Store:     s,
		Tokens:    newTestTokens(),
		Directory: &DirectoryService{Store: s},
	}
}

type seedOpts struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Age       int64
	Address   string
	DeleteFlg int64
	Roles     []string
}

func seedUser(t *testing.T, s store.Store, opts seedOpts) domain.User {
	t.Helper()
	ctx := context.Background()

	hash, err := cryptox.HashPassword(opts.Password)
	require.NoError(t, err)

	if opts.FirstName == "" {
		opts.FirstName = "Test"
	}
	if opts.LastName == "" {
		opts.LastName = "User"
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     opts.Username,
		PasswordHash: hash,
		FirstName:    opts.FirstName,
		LastName:     opts.LastName,
		Age:          opts.Age,
		Address:      opts.Address,
		Verified:     true,
		DeleteFlg:    opts.DeleteFlg,
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	for _, roleID := range opts.Roles {
		require.NoError(t, s.Roles().AssignRole(ctx, u.ID, roleID))
	}
	return u
}

func seedRole(t *testing.T, s store.Store, roleID, roleName string) {
	t.Helper()
	require.NoError(t, s.Roles().CreateRole(context.Background(),
		domain.RoleRef{RoleID: roleID, RoleName: roleName}))
}

func requireAPIError(t *testing.T, err error, statusCode int, code string) *apierr.Error {
	t.Helper()

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestSignIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issues a token pair for valid credentials", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		svc := newAuthService(s)
		user := seedUser(t, s, seedOpts{Username: "alice", Password: "s3cret", LastName: "Smith", Age: 34})

		pair, err := svc.SignIn(ctx, "alice", "s3cret")
		require.NoError(t, err)
		require.Equal(t, user.ID, pair.User.UserID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		claims, err := svc.Tokens.Verify(jwtx.KindAccess, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.UserID)
		require.Equal(t, "Smith", claims.LastName)
		require.Equal(t, int64(34), claims.Age)

		_, err = svc.Tokens.Verify(jwtx.KindRefresh, pair.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("collects all missing fields", func(t *testing.T) {
		t.Parallel()
		svc := newAuthService(newTestStore(t))

		_, err := svc.SignIn(ctx, "", "")
		apiErr := requireAPIError(t, err, http.StatusBadRequest, apierr.CodeMissingSignInField)
		require.Equal(t, []string{"The username is empty", "The password is empty"}, apiErr.Messages)
	})

	t.Run("reports only the missing field", func(t *testing.T) {
		t.Parallel()
		svc := newAuthService(newTestStore(t))

		_, err := svc.SignIn(ctx, "alice", "")
		apiErr := requireAPIError(t, err, http.StatusBadRequest, apierr.CodeMissingSignInField)
		require.Equal(t, []string{"The password is empty"}, apiErr.Messages)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		svc := newAuthService(s)
		seedUser(t, s, seedOpts{Username: "alice", Password: "s3cret"})

		_, unknownErr := svc.SignIn(ctx, "nobody", "s3cret")
		unknown := requireAPIError(t, unknownErr, http.StatusUnauthorized, apierr.CodeUnauthenticated)

		_, wrongErr := svc.SignIn(ctx, "alice", "wrong")
		wrong := requireAPIError(t, wrongErr, http.StatusUnauthorized, apierr.CodeUnauthenticated)

		require.Equal(t, unknown.Messages, wrong.Messages)
		require.Equal(t, unknown.Params, wrong.Params)
	})

	t.Run("rejects deactivated accounts", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		svc := newAuthService(s)
		seedUser(t, s, seedOpts{Username: "gone", Password: "s3cret", DeleteFlg: 1})

		_, err := svc.SignIn(ctx, "gone", "s3cret")
		requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeAccountUnavailable)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issues a new access token and echoes the refresh token", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		svc := newAuthService(s)
		user := seedUser(t, s, seedOpts{Username: "alice", Password: "s3cret", LastName: "Smith"})

		pair, err := svc.SignIn(ctx, "alice", "s3cret")
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, refreshed.User.UserID)
		require.Equal(t, pair.RefreshToken, refreshed.RefreshToken)

		claims, err := svc.Tokens.Verify(jwtx.KindAccess, refreshed.AccessToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.UserID)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		t.Parallel()
		svc := newAuthService(newTestStore(t))

		_, err := svc.RefreshToken(ctx, "")
		requireAPIError(t, err, http.StatusBadRequest, apierr.CodeMissingRefreshToken)
	})

	t.Run("rejects an access token presented as refresh", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		svc := newAuthService(s)
		seedUser(t, s, seedOpts{Username: "alice", Password: "s3cret"})

		pair, err := svc.SignIn(ctx, "alice", "s3cret")
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, pair.AccessToken)
		requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeVerifyRefreshToken)
	})

	t.Run("rejects a token whose user no longer exists", func(t *testing.T) {
		t.Parallel()
		svc := newAuthService(newTestStore(t))

		orphan, err := svc.Tokens.Issue(jwtx.KindRefresh, jwtx.Payload{UserID: "01X_MISSING"})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, orphan)
		requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeUnauthenticated)
	})

	t.Run("rejects a token for a deactivated user", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		svc := newAuthService(s)
		user := seedUser(t, s, seedOpts{Username: "gone", Password: "s3cret", DeleteFlg: 2})

		token, err := svc.Tokens.Issue(jwtx.KindRefresh, jwtx.Payload{UserID: user.ID})
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, token)
		requireAPIError(t, err, http.StatusUnauthorized, apierr.CodeAccountUnavailable)
	})
}
