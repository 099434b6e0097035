package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"time"

	"todo_backend/internal/config"
	"todo_backend/internal/db"
	"todo_backend/internal/domain"
	"todo_backend/internal/logger"
	"todo_backend/internal/repository"
	"todo_backend/internal/service"
)

// seeds a handful of tasks through the service so validation and defaults apply
func main() {
	n := flag.Int("n", 5, "number of tasks to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	var repo repository.TaskRepository
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool := db.ConnectPostgres(cfg.DatabaseURL)
		defer pool.Close()
		repo = repository.NewPostgresTaskRepository(pool)
	case config.StoreMongo:
		client, coll := db.ConnectMongo(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		defer client.Disconnect(context.Background())
		repo = repository.NewMongoTaskRepository(coll)
	default:
		log.Fatalf("seeding needs a persistent store, got STORE_DRIVER=%s", cfg.StoreDriver)
	}

	svc := service.NewTaskService(repo)
	ctx := context.Background()
	start := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < *n; i++ {
		// due dates run backwards so sortBy=dueDate visibly reorders the list
		due := start.AddDate(0, 0, *n-i)
		t, err := svc.CreateTask(ctx, service.TaskInput{
			Title:       "Sample task " + due.Format("Jan 2"),
			Description: "Seeded task number " + strconv.Itoa(i+1),
			DueDate:     due.Format("2006-01-02"),
		})
		if err != nil {
			log.Fatalf("create task %d: %v", i, err)
		}
		log.Printf("task created id=%s due=%s\n", t.ID, t.DueDate.Format(time.RFC3339))
	}

	all, err := svc.ListTasks(ctx, domain.SortNone)
	if err != nil {
		log.Fatalf("list tasks: %v", err)
	}
	log.Printf("store now holds %d tasks\n", len(all))
}
