package service

import (
	"context"
	"errors"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownPlaceholder is rendered wherever a directory join misses.
const UnknownPlaceholder = "Unknown"

// Candidate is one entry of the assignment candidate directory: an account
// left-joined with its profile name and subscriber email.
type Candidate struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// --- Service Interface ---
type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.UserProfile) error
	// ListCandidates returns every account except the requester, with
	// profile/subscriber data joined in. Join misses render as the
	// placeholder value, they never drop or fail the listing.
	ListCandidates(ctx context.Context, excludeUserID primitive.ObjectID) ([]Candidate, error)
}

// --- Service Implementation ---

type userService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	subRepo     repository.SubscriptionRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	subRepo repository.SubscriptionRepository,
) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		subRepo:     subRepo,
	}
}

// GetProfile returns the profile for a user. A missing profile is returned
// as an empty profile for that user, not as an error.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.UserProfile{UserID: userID}, nil
		}
		return nil, err
	}
	return profile, nil
}

// UpsertProfile writes the caller's own profile fields.
func (s *userService) UpsertProfile(ctx context.Context, profile *domain.UserProfile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("user ID is required")
	}
	return s.profileRepo.Upsert(ctx, profile)
}

// ListCandidates builds the candidate directory for the assignment workflow.
func (s *userService) ListCandidates(ctx context.Context, excludeUserID primitive.ObjectID) ([]Candidate, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.subRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	nameByUser := make(map[primitive.ObjectID]string, len(profiles))
	for _, p := range profiles {
		nameByUser[p.UserID] = p.Name
	}
	emailByUser := make(map[primitive.ObjectID]string, len(subs))
	for _, sub := range subs {
		emailByUser[sub.UserID] = sub.Email
	}

	candidates := make([]Candidate, 0, len(users))
	for _, u := range users {
		if u.ID == excludeUserID {
			continue
		}
		name := nameByUser[u.ID]
		if name == "" {
			name = UnknownPlaceholder
		}
		email := emailByUser[u.ID]
		if email == "" {
			// Fall back to the account email before giving up.
			email = u.Email
		}
		if email == "" {
			email = UnknownPlaceholder
		}
		candidates = append(candidates, Candidate{
			UserID: u.ID.Hex(),
			Name:   name,
			Email:  email,
		})
	}
	return candidates, nil
}
