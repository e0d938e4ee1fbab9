package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/arxivpress/arxivpress/app/blog"
)

type GeneratePostTask struct {
	Task
	generator PostGenerator
}

func NewGeneratePostTask(generator PostGenerator) *GeneratePostTask {
	return &GeneratePostTask{
		Task:      NewTask(TaskTypeGeneratePost),
		generator: generator,
	}
}

func (t *GeneratePostTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	post, err := t.generator.GeneratePost(ctx)
	if err != nil {
		// A run without relevant papers is a normal outcome, not a failure
		// worth retrying.
		if errors.Is(err, blog.ErrNoPapers) {
			slog.Info("Task completed without a post",
				"type", string(t.Type),
				"duration", t.GetDuration())
			return nil
		}
		return err
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"post_id", post.ID,
		"title", post.Title,
		"duration", t.GetDuration())

	return nil
}
