package models

import "time"

// User represents a member of the marketplace.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=4,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`

	// Favs is the ordered list of advert ids the user marked as favorite.
	// Stored denormalized on the user, so favorites pagination is done in
	// memory over this slice rather than with a store query.
	Favs StringList `json:"favs" gorm:"serializer:json;type:text"`

	ResetPasswordToken   string `json:"-" gorm:"type:varchar(64)"`
	ResetPasswordExpires int64  `json:"-"` // unix millis; zero means no pending reset

	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StringList is a JSON-serialized list column shared by user favs and advert tags.
type StringList []string
