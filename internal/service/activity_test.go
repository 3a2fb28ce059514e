package service

import (
	"context"
	"testing"

	"library_backend/internal/models"
)

func TestActivityService_Snapshot(t *testing.T) {
	books := &fakeBookRepo{byID: map[int64]*models.Book{
		1: {ID: 1}, 2: {ID: 2},
	}}
	borrows := &fakeBorrowRepo{borrowed: []models.Book{{ID: 1}}}
	svc := NewActivityService(books, borrows)

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalBooks != 2 || snap.TotalBorrows != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.GeneratedAt.IsZero() {
		t.Fatalf("GeneratedAt not set")
	}
}
