package users

import (
	"context"
	"errors"
	"testing"
)

func TestAuthorNameFallsBackToLogin(t *testing.T) {
	if got := (&Author{Login: "jdoe"}).Name(); got != "jdoe" {
		t.Fatalf("expected login fallback, got %q", got)
	}
	if got := (&Author{Login: "jdoe", DisplayName: "J. Doe"}).Name(); got != "J. Doe" {
		t.Fatalf("expected display name, got %q", got)
	}
}

func TestMemoryRepositoryLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	if _, err := repo.Create(ctx, &Author{ID: 2, Login: "editor", DisplayName: "The Editor"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	author, err := repo.GetByID(ctx, 2)
	if err != nil || author.Name() != "The Editor" {
		t.Fatalf("unexpected lookup result %+v, %v", author, err)
	}

	_, err = repo.GetByID(ctx, 3)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
