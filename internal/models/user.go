// Package models contains the persistent entities of the skill-matching domain
// and the projections returned over HTTP.
package models

// User is a registered member who can teach or learn skills.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	UserID   uint    `gorm:"primaryKey" json:"user_id"`
	Username string  `gorm:"size:255;not null" json:"username"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Email    string  `gorm:"size:255;not null" json:"email"`
	AboutMe  *string `gorm:"column:aboutme;type:text" json:"aboutme"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// PublicUser is the read projection of a User.
type PublicUser struct {
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	AboutMe  *string `json:"aboutme"`
}

// Public returns the fields of u that may leave the service.
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		AboutMe:  u.AboutMe,
	}
}
