package dto

type CreateBookRequest struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	ISBN          string   `json:"isbn"`
	PublishedYear int      `json:"published_year"`
	Genre         string   `json:"genre"`
	Pages         int      `json:"pages"`
	Status        string   `json:"status"`
	Rating        *float64 `json:"rating"`
}

// UpdateBookRequest is a partial update; nil fields are left untouched.
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	ISBN          *string  `json:"isbn"`
	PublishedYear *int     `json:"published_year"`
	Genre         *string  `json:"genre"`
	Pages         *int     `json:"pages"`
	Status        *string  `json:"status"`
	Rating        *float64 `json:"rating"`
}
