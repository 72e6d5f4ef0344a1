package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/priyan-sh/dropgate/internal/auth"
	"github.com/priyan-sh/dropgate/internal/repositories"
)

// IdentityService resolves bearer credentials to a user. Verification of the
// token itself is delegated to the auth package; this layer additionally
// confirms the referenced user still exists, so a deleted account with a
// live token reads as unauthenticated instead of crashing downstream.
type IdentityService struct {
	users  repositories.UserRepository
	secret string
}

func NewIdentityService(users repositories.UserRepository, secret string) *IdentityService {
	return &IdentityService{users: users, secret: secret}
}

func (s *IdentityService) ResolveIdentity(ctx context.Context, bearer string) (uuid.UUID, error) {
	claims, err := auth.ParseToken(bearer, s.secret)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return uuid.Nil, ErrUnauthenticated
		}
		return uuid.Nil, err
	}

	return userID, nil
}
