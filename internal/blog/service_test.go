package blog

import (
	"context"
	"errors"
	"testing"
)

func TestCreateGeneration(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	b, err := svc.CreateGeneration(ctx, "  kubernetes operators  ", "user-42")
	if err != nil {
		t.Fatalf("create generation: %v", err)
	}
	if b.ID == "" {
		t.Fatalf("blog id not assigned")
	}
	if b.Status != BlogGenerating {
		t.Fatalf("blog status = %q, want %q", b.Status, BlogGenerating)
	}
	if b.Slug != b.ID {
		t.Fatalf("placeholder slug = %q, want blog id", b.Slug)
	}

	j, err := svc.GetJob(ctx, b.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if j.Status != JobPending || j.CurrentStep != StepInitializing {
		t.Fatalf("job: status=%q step=%q", j.Status, j.CurrentStep)
	}
	if j.Topic != "kubernetes operators" {
		t.Fatalf("topic = %q, want trimmed topic", j.Topic)
	}
}

func TestCreateGeneration_EmptyTopic(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	svc := NewService(repo)

	if _, err := svc.CreateGeneration(context.Background(), "   ", ""); !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("err = %v, want ErrEmptyTopic", err)
	}
}

func TestCreateGeneration_DefaultsAuthor(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	svc := NewService(repo)

	b, err := svc.CreateGeneration(context.Background(), "topic", "")
	if err != nil {
		t.Fatalf("create generation: %v", err)
	}
	if b.AuthorID != defaultAuthorID {
		t.Fatalf("author = %q, want %q", b.AuthorID, defaultAuthorID)
	}
}

func TestCreateGeneration_UniqueShells(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	svc := NewService(repo)
	ctx := context.Background()

	// two shells for the same topic must not collide on the slug index
	a, err := svc.CreateGeneration(ctx, "same topic", "")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := svc.CreateGeneration(ctx, "same topic", "")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("duplicate ids")
	}
}
