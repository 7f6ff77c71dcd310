package models

// Tag is a normalized tag value, created on demand when a new name is posted.
// The public tag listing merges this table with the distinct tags found
// across all adverts.
type Tag struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Value string `json:"value" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=1,max=50"`
}
