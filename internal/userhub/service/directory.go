package service

import (
	"context"
	"errors"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
	"github.com/cobaltlabs/userhub/internal/userhub/store"
	"github.com/cobaltlabs/userhub/pkg/apierr"
)

// DirectoryService resolves identities against the user directory. An
// identity is valid only when the backing record exists exactly once and its
// delete flag is the active value; every flow re-checks this live, never
// from a cache.
type DirectoryService struct {
	Store store.Store
}

// ResolveActive returns the identity for userID, rejecting unknown and
// deactivated accounts.
func (s *DirectoryService) ResolveActive(ctx context.Context, userID string) (domain.Identity, error) {
	identity, err := s.Store.Users().GetIdentityByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, apierr.Unauthenticated()
	}
	if err != nil {
		return domain.Identity{}, apierr.Repository(apierr.CodeQueryIdentityByID,
			"GetIdentityByID", []string{userID}, err)
	}

	if !identity.Active() {
		return domain.Identity{}, apierr.AccountUnavailable()
	}
	return identity, nil
}
