package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/resumehub/authkit/pkg/identity"
)

const collectionName = "users"

// Store is a MongoDB-backed implementation of identity.Storage.
type Store struct {
	collection *mongo.Collection
}

// NewStore creates a store on top of the given database handle.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(collectionName)}
}

// userDocument is the BSON shape of a stored user. The internal id is kept
// as a string so documents stay readable in shell queries.
type userDocument struct {
	ID                  string    `bson:"_id"`
	Name                string    `bson:"name,omitempty"`
	Email               string    `bson:"email,omitempty"`
	PasswordHash        []byte    `bson:"password_hash,omitempty"`
	AvatarURL           string    `bson:"avatar_url,omitempty"`
	Provider            string    `bson:"provider"`
	ProviderID          string    `bson:"provider_id,omitempty"`
	SubscriptionPlan    string    `bson:"subscription_plan"`
	EmailVerified       bool      `bson:"email_verified"`
	VerificationToken   string    `bson:"verification_token,omitempty"`
	VerificationExpires time.Time `bson:"verification_expires,omitempty"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

func toDocument(u *identity.User) userDocument {
	return userDocument{
		ID:                  u.ID.String(),
		Name:                u.Name,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		AvatarURL:           u.AvatarURL,
		Provider:            string(u.Provider),
		ProviderID:          u.ProviderID,
		SubscriptionPlan:    u.SubscriptionPlan,
		EmailVerified:       u.EmailVerified,
		VerificationToken:   u.VerificationToken,
		VerificationExpires: u.VerificationExpires,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (d userDocument) toUser() (*identity.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", d.ID, err)
	}
	return &identity.User{
		ID:                  id,
		Name:                d.Name,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		AvatarURL:           d.AvatarURL,
		Provider:            identity.Provider(d.Provider),
		ProviderID:          d.ProviderID,
		SubscriptionPlan:    d.SubscriptionPlan,
		EmailVerified:       d.EmailVerified,
		VerificationToken:   d.VerificationToken,
		VerificationExpires: d.VerificationExpires,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}, nil
}

// providerIdentityFilter scopes the (provider, provider_id) uniqueness
// constraint to documents that carry a provider_id, so local accounts do not
// collide on the absent field.
func providerIdentityFilter() bson.D {
	return bson.D{{Key: "provider_id", Value: bson.D{{Key: "$exists", Value: true}}}}
}

// localEmailFilter scopes email uniqueness to locally registered accounts.
// The same email arriving through two different providers produces two
// distinct records, so provider-backed documents must stay out of the
// constraint.
func localEmailFilter() bson.D {
	return bson.D{
		{Key: "provider", Value: string(identity.ProviderLocal)},
		{Key: "email", Value: bson.D{{Key: "$exists", Value: true}}},
	}
}

// EnsureIndexes creates the indexes the store depends on. It is idempotent
// and meant to run once at startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "provider", Value: 1}, {Key: "provider_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(providerIdentityFilter()),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("unique_local_email").
				SetUnique(true).
				SetPartialFilterExpression(localEmailFilter()),
		},
		{
			// Non-unique lookup index; named apart from unique_local_email
			// because both share the email key pattern.
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_lookup"),
		},
		{
			Keys:    bson.D{{Key: "verification_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// CreateUser inserts a new user record. Each account kind sits under exactly
// one unique index, so a duplicate-key violation means
// identity.ErrEmailAlreadyExists for local accounts and
// identity.ErrProviderIDTaken for provider-backed ones.
func (s *Store) CreateUser(ctx context.Context, user *identity.User) error {
	_, err := s.collection.InsertOne(ctx, toDocument(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if user.Provider == identity.ProviderLocal {
				return identity.ErrEmailAlreadyExists
			}
			return identity.ErrProviderIDTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID fetches a user by internal id.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// GetUserByProvider fetches a user by its external identity pair.
func (s *Store) GetUserByProvider(ctx context.Context, provider identity.Provider, providerID string) (*identity.User, error) {
	return s.findOne(ctx, bson.D{
		{Key: "provider", Value: string(provider)},
		{Key: "provider_id", Value: providerID},
	})
}

// GetUserByEmail fetches a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// GetUserByVerificationToken fetches a user by its pending verification token.
func (s *Store) GetUserByVerificationToken(ctx context.Context, token string) (*identity.User, error) {
	return s.findOne(ctx, bson.D{{Key: "verification_token", Value: token}})
}

// MarkEmailVerified flags the account as verified and clears the pending
// verification token.
func (s *Store) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "email_verified", Value: true},
				{Key: "updated_at", Value: time.Now()},
			}},
			{Key: "$unset", Value: bson.D{
				{Key: "verification_token", Value: ""},
				{Key: "verification_expires", Value: ""},
			}},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if res.MatchedCount == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

func (s *Store) findOne(ctx context.Context, filter bson.D) (*identity.User, error) {
	var doc userDocument
	if err := s.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return doc.toUser()
}
