package camunda

import (
	"context"

	"storefront-workers/internal/common/config"
	"storefront-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker in internal/workers.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// CamundaWorker is an open job subscription for one task type.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker opens a job worker for taskType. It returns nil when the worker is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	if !wcfg.Enabled {
		log.Info("worker disabled", nil)
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})

	return &CamundaWorker{worker: jobWorker, logger: log, taskType: taskType}
}

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

// CompleteJob sends output as the job's result variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{"error": err, "jobKey": job.Key})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{"error": err, "jobKey": job.Key})
	}
}
