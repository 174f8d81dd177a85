package service

import (
	"context"
	"testing"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetProfile_MissReturnsEmptyProfile(t *testing.T) {
	userID := primitive.NewObjectID()
	profileRepo := new(MockProfileRepo)
	profileRepo.On("GetByUserID", mock.Anything, userID).Return(nil, repository.ErrNotFound)

	svc := NewUserService(new(MockUserRepo), profileRepo, new(MockSubscriptionRepo))
	profile, err := svc.GetProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Empty(t, profile.Name)
}

func TestListCandidates(t *testing.T) {
	requester := primitive.NewObjectID()
	withProfile := primitive.NewObjectID()
	withSubOnly := primitive.NewObjectID()
	bare := primitive.NewObjectID()

	userRepo := new(MockUserRepo)
	profileRepo := new(MockProfileRepo)
	subRepo := new(MockSubscriptionRepo)

	userRepo.On("List", mock.Anything).Return([]domain.User{
		{ID: requester, Name: "Requester", Email: "req@example.com"},
		{ID: withProfile, Name: "Account A", Email: "a@example.com"},
		{ID: withSubOnly, Name: "Account B", Email: "b@example.com"},
		{ID: bare, Name: "Account C"},
	}, nil)
	profileRepo.On("List", mock.Anything).Return([]domain.UserProfile{
		{UserID: withProfile, Name: "Alice"},
	}, nil)
	subRepo.On("List", mock.Anything).Return([]domain.Subscription{
		{UserID: withSubOnly, Email: "sub-b@example.com", Subscribed: true},
	}, nil)

	svc := NewUserService(userRepo, profileRepo, subRepo)
	candidates, err := svc.ListCandidates(context.Background(), requester)

	require.NoError(t, err)
	require.Len(t, candidates, 3, "the requester is excluded")

	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.UserID] = c
	}

	// Profile join hit: profile name wins, account email fallback.
	assert.Equal(t, "Alice", byID[withProfile.Hex()].Name)
	assert.Equal(t, "a@example.com", byID[withProfile.Hex()].Email)

	// Subscriber join hit, no profile: placeholder name, subscriber email.
	assert.Equal(t, UnknownPlaceholder, byID[withSubOnly.Hex()].Name)
	assert.Equal(t, "sub-b@example.com", byID[withSubOnly.Hex()].Email)

	// No joins and no account email: placeholders all the way.
	assert.Equal(t, UnknownPlaceholder, byID[bare.Hex()].Name)
	assert.Equal(t, UnknownPlaceholder, byID[bare.Hex()].Email)
}

func TestUpsertProfile_RequiresUserID(t *testing.T) {
	svc := NewUserService(new(MockUserRepo), new(MockProfileRepo), new(MockSubscriptionRepo))
	err := svc.UpsertProfile(context.Background(), &domain.UserProfile{Name: "No ID"})
	assert.Error(t, err)
}
