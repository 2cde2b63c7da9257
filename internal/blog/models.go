package blog

import "time"

type BlogStatus string

const (
	BlogDraft      BlogStatus = "draft"
	BlogGenerating BlogStatus = "generating"
	BlogPublished  BlogStatus = "published"
)

type Blog struct {
	ID       string     `gorm:"primaryKey;size:36" json:"id"`
	Title    string     `gorm:"type:varchar(512);not null" json:"title"`
	Slug     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Content  string     `gorm:"type:longtext;not null" json:"content"`
	Excerpt  string     `gorm:"type:varchar(1024);not null" json:"excerpt"`
	Status   BlogStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	AuthorID string     `gorm:"type:varchar(64);index;not null" json:"author_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }

type Citation struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BlogID string `gorm:"size:36;index;not null" json:"blog_id"`
	URL    string `gorm:"type:varchar(2048);not null" json:"url"`
	Title  string `gorm:"type:varchar(512);not null" json:"title"`

	CreatedAt time.Time `json:"created_at"`
}

func (Citation) TableName() string { return "citations" }
