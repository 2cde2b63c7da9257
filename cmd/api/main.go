package main

import (
	"log"

	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/db"
	"github.com/draftforge/draftforge/internal/httpapi"
	"github.com/draftforge/draftforge/internal/store/rabbitmq"
	"github.com/draftforge/draftforge/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()

	queue, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbit publisher: %v", err)
	}
	defer queue.Close()

	r := httpapi.NewRouter(gdb, cfg, rds, queue)

	log.Printf("api listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
