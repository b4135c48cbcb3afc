package usecase

import (
	"context"
	"strings"

	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/ports"
)

// ProfileUseCase handles the profile boundary the dashboard depends on
type ProfileUseCase struct {
	userRepo ports.UserRepository
}

// NewProfileUseCase creates a new profile use case
func NewProfileUseCase(userRepo ports.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// Get retrieves the actor's own profile
func (uc *ProfileUseCase) Get(ctx context.Context, actor domain.Actor) (*domain.Profile, error) {
	if actor.ID == "" {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdatePhoneNumber sets the actor's phone number
func (uc *ProfileUseCase) UpdatePhoneNumber(ctx context.Context, actor domain.Actor, phoneNumber string) (*domain.Profile, error) {
	if actor.ID == "" {
		return nil, domain.ErrForbidden
	}

	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, domain.NewValidationError("phone_number", "is required")
	}

	if err := uc.userRepo.UpdatePhoneNumber(ctx, actor.ID, phoneNumber); err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor)
}
