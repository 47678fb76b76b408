package userstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/resumehub/authkit/pkg/identity"
)

func TestDocumentMapping(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves all fields", func(t *testing.T) {
		t.Parallel()

		now := time.Now().Truncate(time.Millisecond)
		user := &identity.User{
			ID:                  uuid.New(),
			Name:                "octo",
			Email:               "octo@x.com",
			PasswordHash:        []byte("hash"),
			AvatarURL:           "https://avatars.example/octo",
			Provider:            identity.ProviderGithub,
			ProviderID:          "555",
			SubscriptionPlan:    identity.DefaultSubscriptionPlan,
			EmailVerified:       true,
			VerificationToken:   "tok",
			VerificationExpires: now.Add(time.Hour),
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		got, err := toDocument(user).toUser()
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("malformed stored id is rejected", func(t *testing.T) {
		t.Parallel()

		doc := userDocument{ID: "not-a-uuid", Provider: "google"}
		_, err := doc.toUser()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not-a-uuid")
	})
}

func TestIndexFilters(t *testing.T) {
	t.Parallel()

	t.Run("provider identity uniqueness skips accounts without provider id", func(t *testing.T) {
		t.Parallel()

		want := bson.D{{Key: "provider_id", Value: bson.D{{Key: "$exists", Value: true}}}}
		assert.Equal(t, want, providerIdentityFilter())
	})

	t.Run("email uniqueness is scoped to local accounts", func(t *testing.T) {
		t.Parallel()

		// Provider-backed records must not fall under the constraint: the
		// same email arriving via two providers is two distinct accounts.
		filter := localEmailFilter()
		assert.Contains(t, filter, bson.E{Key: "provider", Value: string(identity.ProviderLocal)})
		assert.NotContains(t, filter, bson.E{Key: "provider", Value: bson.D{{Key: "$exists", Value: true}}})
	})
}
