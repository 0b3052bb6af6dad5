package domain

import "time"

// Review is one principal's review of one book. The (book_id, reviewer_id)
// pair is unique: a second review of the same book by the same reviewer is a
// conflict, not an update.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	BookID     string    `json:"book_id" gorm:"uniqueIndex:idx_book_reviewer;index;not null"`
	ReviewerID string    `json:"reviewer_id" gorm:"uniqueIndex:idx_book_reviewer;index;not null"`
	Text       string    `json:"text" gorm:"not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ResourceOwner identifies the single principal allowed to mutate the
// review.
func (r *Review) ResourceOwner() string {
	return r.ReviewerID
}
