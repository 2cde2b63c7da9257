package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyTopic = errors.New("topic is required")

const defaultAuthorID = "anonymous"

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// CreateGeneration accepts a generation request: it creates the empty blog
// shell (status generating) and its pending job atomically and returns the
// blog. The caller is expected to enqueue the blog id for the worker next.
func (s *Service) CreateGeneration(ctx context.Context, topic, authorID string) (*Blog, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if authorID == "" {
		authorID = defaultAuthorID
	}

	id := uuid.NewString()

	b := &Blog{
		ID:       id,
		Status:   BlogGenerating,
		AuthorID: authorID,
		// slug carries a unique index; seed it with the id until finalize
		// derives the real one from the generated title.
		Slug: id,
	}
	j := &GenerationJob{
		BlogID:      id,
		Topic:       topic,
		Status:      JobPending,
		CurrentStep: StepInitializing,
	}

	if err := s.repo.CreateBlogWithJob(ctx, b, j); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetBlog(ctx context.Context, blogID string) (*Blog, error) {
	return s.repo.GetBlog(ctx, blogID)
}

func (s *Service) GetJob(ctx context.Context, blogID string) (*GenerationJob, error) {
	return s.repo.GetJob(ctx, blogID)
}

func (s *Service) ListCitations(ctx context.Context, blogID string) ([]Citation, error) {
	return s.repo.ListCitations(ctx, blogID)
}

func (s *Service) PublishBlog(ctx context.Context, blogID string) (bool, error) {
	return s.repo.PublishBlog(ctx, blogID)
}

func (s *Service) DeleteBlog(ctx context.Context, blogID string) error {
	return s.repo.DeleteBlog(ctx, blogID)
}
