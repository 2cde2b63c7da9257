package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/kataras/golog"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/draftforge/draftforge/internal/agents"
	"github.com/draftforge/draftforge/internal/blog"
	"github.com/draftforge/draftforge/internal/config"
	"github.com/draftforge/draftforge/internal/db"
	"github.com/draftforge/draftforge/internal/store/rabbitmq"
)

type generationMsg struct {
	BlogID string `json:"blog_id"`
}

func workerConcurrency() int {
	v := os.Getenv("WORKER_CONCURRENCY")
	if v == "" {
		return 2
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 2
	}
	if n > 50 {
		return 50
	}
	return n
}

func main() {
	cfg := config.Load()
	logger := golog.Default

	gdb := db.Connect(cfg.DBDSN)
	repo := blog.NewRepo(gdb)

	llm := agents.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMSiteURL, cfg.LLMAppName)

	orch := blog.NewOrchestrator(
		repo,
		agents.NewTavilySearch(cfg.SearchBaseURL, cfg.SearchAPIKey, cfg.SearchDepth, cfg.SearchMaxHits),
		agents.NewLLMResearch(llm),
		agents.NewLLMWriter(llm),
		logger,
	)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		logger.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	// same declarations as the publisher; inequivalent arguments would be
	// rejected by the broker
	if err := rabbitmq.DeclareTopology(ch, cfg.RabbitQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	//  strict concurrency control
	concurrency := workerConcurrency()

	if err := ch.Qos(concurrency, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("worker started, queue=%s concurrency=%d", cfg.RabbitQueue, concurrency)

	// worker pool
	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var m generationMsg
				if err := json.Unmarshal(d.Body, &m); err != nil || m.BlogID == "" {
					logger.Errorf("worker=%d bad message: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				start := time.Now()
				if err := handleGeneration(ctx, orch, repo, m.BlogID); err != nil {
					if errors.Is(err, blog.ErrJobNotClaimable) {
						// duplicate delivery of a claimed or finished job
						logger.Warnf("worker=%d blog %s already claimed, acking", workerID, m.BlogID)
						_ = d.Ack(false)
						continue
					}
					logger.Errorf("worker=%d blog %s failed cost=%s err=%v", workerID, m.BlogID, time.Since(start), err)
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					logger.Errorf("worker=%d ack failed blog=%s err=%v", workerID, m.BlogID, err)
				}
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			logger.Infof("worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				logger.Errorf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}

func handleGeneration(ctx context.Context, orch *blog.Orchestrator, repo *blog.Repo, blogID string) error {
	j, err := repo.GetJob(ctx, blogID)
	if err != nil {
		return err
	}
	return orch.Run(ctx, j.BlogID, j.Topic)
}
