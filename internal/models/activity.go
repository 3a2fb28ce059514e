package models

import "time"

// ActivitySnapshot is a point-in-time summary of library usage, served over
// the REST API and streamed to WebSocket clients.
type ActivitySnapshot struct {
	TotalBooks         int       `json:"total_books"`
	TotalBorrows       int       `json:"total_borrows"`
	OutstandingBorrows int       `json:"outstanding_borrows"`
	GeneratedAt        time.Time `json:"generated_at"`
}
