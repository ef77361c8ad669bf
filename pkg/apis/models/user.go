// Package models holds the persisted shapes shared by the storage layer and
// the API handlers.
package models

import "time"

// User is a marketplace account. Exactly one of the marketplace roles may be
// assigned via UserType; admins are flagged separately.
type User struct {
	ID             string    `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	FirstName      string    `db:"first_name" json:"firstName"`
	LastName       string    `db:"last_name" json:"lastName"`
	IsAdmin        bool      `db:"is_admin" json:"isAdmin"`
	UserType       *string   `db:"user_type" json:"userType"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
