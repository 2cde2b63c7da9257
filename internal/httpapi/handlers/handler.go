package handlers

import (
	"context"

	"gorm.io/gorm"

	"github.com/draftforge/draftforge/internal/blog"
)

// Queue is the durable submission path for accepted generation requests.
type Queue interface {
	PublishGeneration(ctx context.Context, blogID string) error
}

type Handler struct {
	BlogSvc *blog.Service
	Queue   Queue
}

func NewHandler(db *gorm.DB, queue Queue) *Handler {
	repo := blog.NewRepo(db)
	return &Handler{
		BlogSvc: blog.NewService(repo),
		Queue:   queue,
	}
}
