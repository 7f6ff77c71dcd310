package models

import "time"

// Advert represents a classified listing published by a user.
type Advert struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" gorm:"index;type:varchar(100)" validate:"required,min=3,max=100"`
	ForSale     bool       `json:"for_sale" gorm:"index"`
	Price       float64    `json:"price" gorm:"index" validate:"required,gt=0"`
	Photo       string     `json:"photo" gorm:"type:varchar(255)"`
	Tags        StringList `json:"tags" gorm:"serializer:json;type:text"`
	Description string     `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Reserved    bool       `json:"reserved" gorm:"default:false"`
	Sold        bool       `json:"sold" gorm:"index;default:false"`

	// UserID references the owning member. Enforced at the service layer,
	// not with a database constraint.
	UserID string `json:"member" gorm:"index;type:varchar(36)"`

	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdvertFilter is the store-level predicate built from the public listing
// query parameters. Pointer fields are absent filters when nil.
type AdvertFilter struct {
	NamePrefix string   // case-insensitive "starts with"
	ForSale    *bool    //
	Tag        string   // membership in the tags list
	PriceExact *float64 // price=N
	PriceMin   *float64 // price=N- or N-M
	PriceMax   *float64 // price=-M or N-M
	OnlyUnsold bool     // public search hides sold adverts

	Skip   int
	Limit  int
	Oldest bool     // default order is newest first
	Fields []string // column projection, empty selects everything
}
