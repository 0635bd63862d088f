package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles.
type Role string

const (
	RolePhysio Role = "physio"
	RoleAdmin  Role = "admin"
)

// User is an authenticated account, in practice a physiotherapist who
// owns a library partition and their patients' routines.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`

	// Preferred language for authored content; new exercises default
	// their primary_language to this.
	Language string `bson:"language,omitempty" json:"language,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsPhysio() bool {
	return u.Role == RolePhysio
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
