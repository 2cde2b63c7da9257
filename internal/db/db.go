package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge/internal/blog"
)

func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gdb.AutoMigrate(&blog.Blog{}, &blog.GenerationJob{}, &blog.Citation{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	return gdb
}
