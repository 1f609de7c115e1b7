package model

import "time"

// User represents a registered user. Usernames are unique; the password is
// only ever stored as a bcrypt hash.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Age          int        `json:"age"`
	Gender       string     `json:"gender" gorm:"size:10;index"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserPatch carries the fields of a partial update. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Password *string
	Age      *int
	Gender   *string
}

// Apply copies the present fields onto u. The password is not applied here
// since it has to be hashed first.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
}

// UserFilter narrows a user search by equality. Nil fields are ignored.
type UserFilter struct {
	Username *string
	Age      *int
	Gender   *string
}

// Conditions returns the column/value pairs of the present fields.
func (f UserFilter) Conditions() map[string]interface{} {
	conds := map[string]interface{}{}
	if f.Username != nil {
		conds["username"] = *f.Username
	}
	if f.Age != nil {
		conds["age"] = *f.Age
	}
	if f.Gender != nil {
		conds["gender"] = *f.Gender
	}
	return conds
}
