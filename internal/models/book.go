package models

// Book is a catalog record. ISBN is unique across the catalog.
type Book struct {
	ID            int64  `json:"id"`
	ISBN          string `json:"isbn"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
	Quantity      int    `json:"quantity"`
	Genre         string `json:"genre,omitempty"`
}

// BookPatch is a partial update: nil fields are left untouched.
type BookPatch struct {
	ISBN          *string `json:"isbn"`
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"published_year"`
	Quantity      *int    `json:"quantity"`
	Genre         *string `json:"genre"`
}
