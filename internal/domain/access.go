package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessControl holds the site-access flag for a user, with grant/revoke
// bookkeeping and an optional linked document (stored in object storage,
// served via presigned URLs). At most one row per user.
type AccessControl struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	HasSiteAccess   bool                `bson:"hasSiteAccess" json:"hasSiteAccess"`
	AccessGrantedAt *time.Time          `bson:"accessGrantedAt,omitempty" json:"accessGrantedAt,omitempty"`
	AccessGrantedBy *primitive.ObjectID `bson:"accessGrantedBy,omitempty" json:"accessGrantedBy,omitempty"`
	AccessRevokedAt *time.Time          `bson:"accessRevokedAt,omitempty" json:"accessRevokedAt,omitempty"`
	DocumentKey     string              `bson:"documentKey,omitempty" json:"-"` // object storage key, internal use
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
