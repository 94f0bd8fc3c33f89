package service

import (
	"context"
	"errors"

	profileserrors "pgstay/internal/profiles/errors"
	profilesrepo "pgstay/internal/profiles/repository"
	"pgstay/pkg/auth"
	"pgstay/pkg/config"
	apperrors "pgstay/pkg/errors"
	"pgstay/pkg/model"
	"pgstay/pkg/notify"
)

type SavedEntries interface {
	FindByUser(ctx context.Context, userID string) ([]*model.SavedListing, error)
}

type ReservationHistory interface {
	FindByUser(ctx context.Context, userID string) ([]*model.Reservation, error)
}

type ProfileService interface {
	Overview(ctx context.Context, identity *auth.Identity) (*Overview, error)
}

// Overview is everything the profile page shows. Saved and Reservations are
// newest first.
type Overview struct {
	Profile      *model.Profile        `json:"profile"`
	Saved        []*model.SavedListing `json:"saved"`
	Reservations []*model.Reservation  `json:"reservations"`
}

type profileService struct {
	profiles     profilesrepo.ProfileRepository
	saved        SavedEntries
	reservations ReservationHistory
	cfg          *config.Config
}

func NewProfileService(
	profiles profilesrepo.ProfileRepository,
	saved SavedEntries,
	reservations ReservationHistory,
	cfg *config.Config,
) ProfileService {
	return &profileService{
		profiles:     profiles,
		saved:        saved,
		reservations: reservations,
		cfg:          cfg,
	}
}

func (s *profileService) Overview(ctx context.Context, identity *auth.Identity) (*Overview, error) {
	if identity == nil {
		return nil, apperrors.LoginRequired(notify.DescLoginToContinue)
	}

	profile, err := s.profiles.FindByUserID(ctx, identity.UserID)
	if err != nil {
		if !errors.Is(err, profileserrors.ErrNotFound) {
			s.cfg.Log.Error("Failed to load profile",
				"user_id", identity.UserID,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to retrieve profile", err)
		}
		profile = &model.Profile{
			UserID:   identity.UserID,
			FullName: identity.Name,
			Email:    identity.Email,
		}
	}

	saved, err := s.saved.FindByUser(ctx, identity.UserID)
	if err != nil {
		s.cfg.Log.Error("Failed to load saved entries",
			"user_id", identity.UserID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve saved PGs", err)
	}

	reservations, err := s.reservations.FindByUser(ctx, identity.UserID)
	if err != nil {
		s.cfg.Log.Error("Failed to load reservations",
			"user_id", identity.UserID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	return &Overview{
		Profile:      profile,
		Saved:        saved,
		Reservations: reservations,
	}, nil
}
