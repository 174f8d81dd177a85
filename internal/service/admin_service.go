package service

import (
	"context"
	"errors"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidRole = errors.New("invalid role")
)

// Member is one row of the admin member overview: account, resolved role and
// subscription state joined together.
type Member struct {
	UserID     string      `json:"userId"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Subscribed bool        `json:"subscribed"`
	Tier       string      `json:"tier,omitempty"`
}

// --- Service Interface ---
type AdminService interface {
	// SetRole writes a user's role row. Only privileged callers reach this;
	// sign-up never does.
	SetRole(ctx context.Context, userID primitive.ObjectID, role domain.Role) error
	// UpsertSubscription writes a user's subscription row, as the billing
	// webhook or an admin correction would.
	UpsertSubscription(ctx context.Context, sub *domain.Subscription) error
	// ListMembers returns every account with role and subscription joined.
	// A missing role row shows the baseline role; a missing subscription
	// shows as not subscribed.
	ListMembers(ctx context.Context) ([]Member, error)
}

// --- Service Implementation ---

type adminService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	subRepo  repository.SubscriptionRepository
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	subRepo repository.SubscriptionRepository,
) AdminService {
	return &adminService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		subRepo:  subRepo,
	}
}

// SetRole validates and writes the role row.
func (s *adminService) SetRole(ctx context.Context, userID primitive.ObjectID, role domain.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.roleRepo.Set(ctx, userID, role)
}

// UpsertSubscription writes the subscription row for a user.
func (s *adminService) UpsertSubscription(ctx context.Context, sub *domain.Subscription) error {
	if sub.UserID == primitive.NilObjectID {
		return errors.New("user ID is required")
	}
	return s.subRepo.Upsert(ctx, sub)
}

// ListMembers joins accounts with roles and subscriptions.
func (s *adminService) ListMembers(ctx context.Context) ([]Member, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.subRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	subByUser := make(map[primitive.ObjectID]domain.Subscription, len(subs))
	for _, sub := range subs {
		subByUser[sub.UserID] = sub
	}

	members := make([]Member, 0, len(users))
	for _, u := range users {
		member := Member{
			UserID: u.ID.Hex(),
			Name:   u.Name,
			Email:  u.Email,
			Role:   domain.BaselineRole,
		}
		if row, err := s.roleRepo.Get(ctx, u.ID); err == nil && row.Role.Valid() {
			member.Role = row.Role
		}
		if sub, ok := subByUser[u.ID]; ok {
			member.Subscribed = sub.Subscribed
			member.Tier = sub.Tier
		}
		members = append(members, member)
	}
	return members, nil
}
