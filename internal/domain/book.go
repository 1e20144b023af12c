package domain

import "time"

type Book struct {
	ID              int32     `json:"id"`
	Title           string    `json:"title"`
	ISBN            string    `json:"isbn"`
	AuthorID        int32     `json:"author_id"`
	Author          *Author   `json:"author,omitempty"` // Populated when fetching book details
	CategoryID      int32     `json:"category_id"`
	Category        *Category `json:"category,omitempty"`
	TotalCopies     int32     `json:"total_copies"`
	AvailableCopies int32     `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
}

type Author struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

type Category struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
