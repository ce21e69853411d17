// Package service implements the auth and directory flows on top of the
// store and token layers. Services return *apierr.Error values so handlers
// can write them straight into the response envelope.
package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
	"github.com/cobaltlabs/userhub/internal/userhub/store"
	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/cryptox"
	"github.com/cobaltlabs/userhub/pkg/jwtx"
	"github.com/cobaltlabs/userhub/pkg/slogx"
)

// AuthService implements sign-in, token refresh and the reserved sign-up
// endpoint.
type AuthService struct {
	Store     store.Store
	Tokens    *jwtx.Service
	Directory *DirectoryService
}

// SignIn validates credentials and issues an access/refresh token pair.
// Field violations are collected so a request missing both fields reports
// both at once. Unknown usernames and wrong passwords share a single
// rejection; the two must stay indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	var messages []string
	if username == "" {
		messages = append(messages, "The username is empty")
	}
	if password == "" {
		messages = append(messages, "The password is empty")
	}
	if len(messages) > 0 {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeMissingSignInField, messages...)
	}

	cred, err := s.Store.Users().GetCredentialByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apierr.Unauthenticated()
	}
	if err != nil {
		return nil, apierr.Repository(apierr.CodeQueryCredentials,
			"GetCredentialByUsername", []string{username}, err)
	}

	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			// Unparseable stored hash. Still a 401 to the caller.
			slogx.FromContext(ctx).Error("stored credential hash rejected",
				"user_id", cred.UserID, "error", err)
		}
		return nil, apierr.Unauthenticated()
	}

	if !cred.Active() {
		return nil, apierr.AccountUnavailable()
	}

	payload := jwtx.Payload{
		UserID:    cred.UserID,
		LastName:  cred.LastName,
		Age:       cred.Age,
		DeleteFlg: cred.DeleteFlg,
	}

	accessToken, err := s.Tokens.Issue(jwtx.KindAccess, payload)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.Tokens.Issue(jwtx.KindRefresh, payload)
	if err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("user signed in", "user_id", cred.UserID)

	return &domain.TokenPair{
		User:         domain.TokenUser{UserID: cred.UserID},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken verifies a refresh token, re-checks the account against the
// live directory and issues a new access token. The refresh token is echoed
// back unchanged; refresh tokens are never rotated.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeMissingRefreshToken,
			"Missing refreshToken in request body")
	}

	claims, err := s.Tokens.Verify(jwtx.KindRefresh, refreshToken)
	if err != nil {
		return nil, err
	}

	identity, err := s.Directory.ResolveActive(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	// The new access token embeds the fresh directory row, not the claims
	// from the presented refresh token.
	accessToken, err := s.Tokens.Issue(jwtx.KindAccess, jwtx.Payload{
		UserID:    identity.UserID,
		LastName:  identity.LastName,
		Age:       identity.Age,
		DeleteFlg: identity.DeleteFlg,
	})
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		User:         domain.TokenUser{UserID: identity.UserID},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SignUp is reserved. The route exists behind the authentication gate but
// registration has no business logic yet; the store's CreateUser is in place
// for when it does.
func (s *AuthService) SignUp(ctx context.Context) error {
	return nil
}
