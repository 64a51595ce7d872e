package user

import "time"

// User is a single row of the users table.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	Department   string    `json:"department" db:"department"`
	PasswordHash string    `json:"-" db:"password"` // never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Patch is a partial update. Nil fields are left untouched by the repository.
type Patch struct {
	Name         *string
	Email        *string
	Phone        *string
	IsActive     *bool
	Department   *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Email == nil &&
		p.Phone == nil &&
		p.IsActive == nil &&
		p.Department == nil &&
		p.PasswordHash == nil
}

// Apply writes the non-nil patch fields into u.
func (p Patch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}
