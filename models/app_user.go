package models

import "time"

// AppUser is a back-office login. Password holds the plain text only on
// the way in; the repos store and return the bcrypt hash.
type AppUser struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	Password  string    `json:"password" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
