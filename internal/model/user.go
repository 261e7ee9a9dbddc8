package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Accounts created through the quick registration endpoint have no
// password hash and no mobile number.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hash; never serialized.
//	Name         – display name.
//	Mobile       – unique 10-digit mobile number, empty when unset.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Name         string
	Mobile       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of a user returned by the auth endpoints.
type Profile struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// Profile strips the password hash and timestamps.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Mobile: u.Mobile}
}
