package models

import "time"

// Borrow links a user to a book they took out. A nil ReturnDate means the
// borrow is still outstanding.
type Borrow struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}
