package domain

import "time"

// Book statuses form a closed set.
const (
	StatusToRead  = "to-read"
	StatusReading = "reading"
	StatusRead    = "read"
)

// Statuses lists the valid book statuses in validation order.
var Statuses = []string{StatusToRead, StatusReading, StatusRead}

type Book struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	OwnerID       string    `json:"owner_id" gorm:"index;not null"`
	Title         string    `json:"title" gorm:"not null"`
	Author        string    `json:"author" gorm:"not null"`
	ISBN          string    `json:"isbn" gorm:"not null"` // stored compact, no hyphens or spaces
	PublishedYear int       `json:"published_year" gorm:"not null"`
	Genre         string    `json:"genre" gorm:"not null"`
	Pages         int       `json:"pages" gorm:"not null"`
	Status        string    `json:"status" gorm:"not null;default:to-read"`
	Rating        *float64  `json:"rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ResourceOwner identifies the single principal allowed to mutate the book.
func (b *Book) ResourceOwner() string {
	return b.OwnerID
}
