package dto

type CreateReviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// UpdateReviewRequest is a partial update; nil fields are left untouched.
type UpdateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}
