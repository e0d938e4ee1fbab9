package tasks

import (
	"context"

	"github.com/arxivpress/arxivpress/app/database"
)

// PostGenerator runs one full generation pipeline and returns the stored
// post. blog.Service is the production implementation.
type PostGenerator interface {
	GeneratePost(ctx context.Context) (*database.Post, error)
}

// TaskSchedulerInterface is the scheduling surface used by main and the
// API layer.
// Example usage:
//
//	scheduler := NewScheduler(service)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
