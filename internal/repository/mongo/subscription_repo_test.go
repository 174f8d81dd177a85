package mongo

import (
	"context"
	"testing"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSubscriptionUpsert_StripeCustomerID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	upsertSetDoc := func(mt *mtest.T, sub *domain.Subscription) bson.Raw {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewMongoSubscriptionRepository(mt.DB)
		require.NoError(mt, repo.Upsert(context.Background(), sub))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		stmts, err := evt.Command.Lookup("updates").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, stmts, 1)
		set, err := stmts[0].Document().LookupErr("u", "$set")
		require.NoError(mt, err)
		return set.Document()
	}

	mt.Run("empty ID is left untouched", func(mt *mtest.T) {
		set := upsertSetDoc(mt, &domain.Subscription{
			UserID: primitive.NewObjectID(),
			Tier:   "premium",
		})

		// An admin tier edit must not wipe an existing Stripe linkage.
		_, err := set.LookupErr("stripeCustomerId")
		assert.Error(mt, err, "stripeCustomerId must be omitted from $set when empty")

		tier, err := set.LookupErr("tier")
		require.NoError(mt, err)
		assert.Equal(mt, "premium", tier.StringValue())
	})

	mt.Run("populated ID is written", func(mt *mtest.T) {
		set := upsertSetDoc(mt, &domain.Subscription{
			UserID:           primitive.NewObjectID(),
			Tier:             "basic",
			StripeCustomerID: "cus_123",
		})

		id, err := set.LookupErr("stripeCustomerId")
		require.NoError(mt, err)
		assert.Equal(mt, "cus_123", id.StringValue())
	})
}
