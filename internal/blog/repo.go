package blog

import (
	"context"

	"gorm.io/gorm"

	"github.com/draftforge/draftforge/internal/agents"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// CreateBlogWithJob inserts the blog shell and its pending job in one
// transaction, so a poller can never observe one without the other.
func (r *Repo) CreateBlogWithJob(ctx context.Context, b *Blog, j *GenerationJob) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		return tx.Create(j).Error
	})
}

func (r *Repo) GetBlog(ctx context.Context, id string) (*Blog, error) {
	var b Blog
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repo) GetJob(ctx context.Context, blogID string) (*GenerationJob, error) {
	var j GenerationJob
	if err := r.db.WithContext(ctx).First(&j, "blog_id = ?", blogID).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) ListCitations(ctx context.Context, blogID string) ([]Citation, error) {
	var cs []Citation
	if err := r.db.WithContext(ctx).
		Where("blog_id = ?", blogID).
		Order("id ASC").
		Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// UpdateJob merges the given fields into the job row. Each call is a
// synchronous write, durably visible to pollers before the caller proceeds.
func (r *Repo) UpdateJob(ctx context.Context, blogID string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("blog_id = ?", blogID).
		Updates(fields).Error
}

// ClaimJob atomically transitions pending -> searching. It returns false when
// the job is not in pending, which makes Run safe against double invocation:
// at most one caller ever claims a given job.
func (r *Repo) ClaimJob(ctx context.Context, blogID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&GenerationJob{}).
		Where("blog_id = ? AND status = ?", blogID, JobPending).
		Updates(map[string]any{
			"status":       JobSearching,
			"current_step": StepSearching,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkJobFailed records the terminal failure: error text, fixed failure step,
// retry counter bump, and the owning blog moved back to draft so it does not
// stay stuck in generating. Guarded so a terminal job is never touched again.
func (r *Repo) MarkJobFailed(ctx context.Context, blogID string, errMsg string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&GenerationJob{}).
			Where("blog_id = ? AND status NOT IN ?", blogID, []JobStatus{JobCompleted, JobFailed}).
			Updates(map[string]any{
				"status":       JobFailed,
				"current_step": StepFailed,
				"error":        errMsg,
				"retry_count":  gorm.Expr("retry_count + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already terminal
			return nil
		}
		return tx.Model(&Blog{}).
			Where("id = ? AND status = ?", blogID, BlogGenerating).
			Update("status", BlogDraft).Error
	})
}

// FinalizeGeneration commits the pipeline output in a single transaction:
// blog fields + derived slug, the citation batch (skipped when empty), and
// the job's completed terminal state.
func (r *Repo) FinalizeGeneration(ctx context.Context, blogID string, d *agents.Draft, fields map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Blog{}).
			Where("id = ?", blogID).
			Updates(map[string]any{
				"title":   d.Title,
				"slug":    Slugify(d.Title, blogID),
				"content": d.Content,
				"excerpt": d.Excerpt,
				"status":  BlogDraft,
			}).Error; err != nil {
			return err
		}

		if len(d.Citations) > 0 {
			cs := make([]Citation, 0, len(d.Citations))
			for _, c := range d.Citations {
				cs = append(cs, Citation{BlogID: blogID, URL: c.URL, Title: c.Title})
			}
			if err := tx.Create(&cs).Error; err != nil {
				return err
			}
		}

		job := map[string]any{
			"status":       JobCompleted,
			"current_step": StepCompleted,
		}
		for k, v := range fields {
			job[k] = v
		}
		return tx.Model(&GenerationJob{}).
			Where("blog_id = ? AND status NOT IN ?", blogID, []JobStatus{JobCompleted, JobFailed}).
			Updates(job).Error
	})
}

// PublishBlog transitions draft -> published. Returns false if the blog was
// not in draft.
func (r *Repo) PublishBlog(ctx context.Context, blogID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Blog{}).
		Where("id = ? AND status = ?", blogID, BlogDraft).
		Update("status", BlogPublished)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteBlog removes the blog and its owned job and citations (cascade).
func (r *Repo) DeleteBlog(ctx context.Context, blogID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", blogID).Delete(&Citation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", blogID).Delete(&GenerationJob{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Blog{}, "id = ?", blogID).Error
	})
}
