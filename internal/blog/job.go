package blog

import "time"

type JobStatus string

const (
	JobPending     JobStatus = "pending"
	JobSearching   JobStatus = "searching"
	JobResearching JobStatus = "researching"
	JobWriting     JobStatus = "writing"
	JobCompleted   JobStatus = "completed"
	JobFailed      JobStatus = "failed"
)

// IsTerminal reports whether no further transitions may occur.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Progress step labels surfaced to polling clients.
const (
	StepInitializing = "Initializing..."
	StepSearching    = "Searching web sources..."
	StepResearching  = "Analyzing sources and extracting insights..."
	StepWriting      = "Generating blog content..."
	StepCompleted    = "Blog generation complete"
	StepFailed       = "Generation failed"
)

// GenerationJob tracks one pipeline run, keyed 1:1 by the owning blog.
// The orchestrator is the only writer; completion flags are monotonic and
// status only moves forward (pending -> searching -> researching -> writing
// -> completed, failed reachable from any non-terminal state).
type GenerationJob struct {
	BlogID string `gorm:"primaryKey;size:36" json:"blog_id"`

	Topic string `gorm:"type:varchar(512);not null" json:"topic"`

	Status      JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	CurrentStep string    `gorm:"type:varchar(128);not null" json:"current_step"`

	SearchComplete   bool `gorm:"not null;default:false" json:"search_complete"`
	ResearchComplete bool `gorm:"not null;default:false" json:"research_complete"`
	WriterComplete   bool `gorm:"not null;default:false" json:"writer_complete"`

	// Raw stage output snapshots, for inspection and manual resume.
	SearchResults  *string `gorm:"type:json" json:"search_results,omitempty"`
	ResearchOutput *string `gorm:"type:json" json:"research_output,omitempty"`

	Error      *string `gorm:"type:text" json:"error,omitempty"`
	RetryCount int     `gorm:"not null;default:0" json:"retry_count"`

	SearchStartedAt    *time.Time `json:"search_started_at,omitempty"`
	SearchDurationMs   *int64     `json:"search_duration_ms,omitempty"`
	ResearchStartedAt  *time.Time `json:"research_started_at,omitempty"`
	ResearchDurationMs *int64     `json:"research_duration_ms,omitempty"`
	WriteStartedAt     *time.Time `json:"write_started_at,omitempty"`
	WriteDurationMs    *int64     `json:"write_duration_ms,omitempty"`

	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	TotalDurationMs *int64     `json:"total_duration_ms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GenerationJob) TableName() string { return "generation_jobs" }
