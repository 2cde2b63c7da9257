package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/common"
)

func (h *Handler) Ping(c *gin.Context) {
	common.Ok(c, gin.H{"pong": true})
}

type generateBlogReq struct {
	Topic    string `json:"topic" binding:"required"`
	AuthorID string `json:"author_id"`
}

// GenerateBlog accepts a topic, creates the blog shell plus its pending job,
// enqueues the blog id for the worker, and returns immediately. The client
// polls GetGenerationStatus for progress.
func (h *Handler) GenerateBlog(c *gin.Context) {
	var req generateBlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	b, err := h.BlogSvc.CreateGeneration(c.Request.Context(), req.Topic, req.AuthorID)
	if err != nil {
		if errors.Is(err, blog.ErrEmptyTopic) {
			common.Fail(c, http.StatusBadRequest, 10002, "topic is required")
			return
		}
		log.Printf("[GenerateBlog] create failed topic=%q err=%v", req.Topic, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	if err := h.Queue.PublishGeneration(c.Request.Context(), b.ID); err != nil {
		log.Printf("[GenerateBlog] enqueue failed blog=%s err=%v", b.ID, err)
		// no worker will ever claim this job; remove the shell so the
		// failed request leaves no stuck pending record behind
		if delErr := h.BlogSvc.DeleteBlog(c.Request.Context(), b.ID); delErr != nil {
			log.Printf("[GenerateBlog] cleanup failed blog=%s err=%v", b.ID, delErr)
		}
		common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
		return
	}

	common.Ok(c, gin.H{"blog_id": b.ID})
}

// GetGenerationStatus is the poll endpoint: the current job record as JSON.
func (h *Handler) GetGenerationStatus(c *gin.Context) {
	blogID := c.Param("id")

	j, err := h.BlogSvc.GetJob(c.Request.Context(), blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40401, "generation job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	common.Ok(c, gin.H{
		"blog_id":           j.BlogID,
		"status":            j.Status,
		"current_step":      j.CurrentStep,
		"search_complete":   j.SearchComplete,
		"research_complete": j.ResearchComplete,
		"writer_complete":   j.WriterComplete,
		"error":             j.Error,
		"retry_count":       j.RetryCount,
		"updated_at":        j.UpdatedAt,
	})
}

func (h *Handler) GetBlog(c *gin.Context) {
	b, err := h.BlogSvc.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "blog not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.Ok(c, gin.H{"blog": b})
}

func (h *Handler) ListBlogCitations(c *gin.Context) {
	blogID := c.Param("id")

	if _, err := h.BlogSvc.GetBlog(c.Request.Context(), blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "blog not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	cs, err := h.BlogSvc.ListCitations(c.Request.Context(), blogID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.Ok(c, gin.H{"citations": cs})
}

func (h *Handler) PublishBlog(c *gin.Context) {
	blogID := c.Param("id")

	published, err := h.BlogSvc.PublishBlog(c.Request.Context(), blogID)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	if !published {
		// missing blog or not in draft
		if _, err := h.BlogSvc.GetBlog(c.Request.Context(), blogID); err != nil {
			common.Fail(c, http.StatusNotFound, 40402, "blog not found")
			return
		}
		common.Fail(c, http.StatusConflict, 40901, "blog is not in draft")
		return
	}
	common.Ok(c, gin.H{"blog_id": blogID, "status": blog.BlogPublished})
}

func (h *Handler) DeleteBlog(c *gin.Context) {
	blogID := c.Param("id")

	if _, err := h.BlogSvc.GetBlog(c.Request.Context(), blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "blog not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	if err := h.BlogSvc.DeleteBlog(c.Request.Context(), blogID); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	common.Ok(c, gin.H{"deleted": true})
}
