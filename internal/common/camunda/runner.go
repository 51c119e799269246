package camunda

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "storefront-workers/internal/common/errors"
	"storefront-workers/internal/common/logger"
	"storefront-workers/internal/common/metrics"
	"storefront-workers/internal/common/observability"
)

// JobRunner is the decode, execute, complete-or-fail loop every worker's Handle shares.
type JobRunner struct {
	TaskType      string
	Timeout       time.Duration
	Errors        *apperrors.ErrorHandler
	Observability *observability.Observability
	Logger        logger.Logger
}

// NewJobRunner tags log with taskType and builds the job error handler from it.
func NewJobRunner(taskType string, timeout time.Duration, obs *observability.Observability, log logger.Logger) *JobRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	return &JobRunner{
		TaskType:      taskType,
		Timeout:       timeout,
		Errors:        apperrors.NewErrorHandler(log),
		Observability: obs,
		Logger:        log,
	}
}

// Run decodes the job variables into input, calls exec and reports the outcome to the broker.
func (r *JobRunner) Run(client worker.JobClient, job entities.Job, input interface{}, exec func(ctx context.Context) (interface{}, error)) {
	start := time.Now()
	r.Logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	if err := json.Unmarshal([]byte(job.Variables), input); err != nil {
		r.fail(client, job, apperrors.NewParseError(err), start)
		return
	}

	output, err := exec(ctx)
	if err != nil {
		r.fail(client, job, err, start)
		return
	}

	// the job context may have expired; broker commands get their own
	CompleteJob(context.Background(), client, job, output, r.Logger)
	metrics.WorkerJobsCompleted.WithLabelValues(r.TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.TaskType).Observe(time.Since(start).Seconds())
	r.Observability.RecordJob(context.Background(), r.TaskType, "completed", time.Since(start))
}

func (r *JobRunner) fail(client worker.JobClient, job entities.Job, err error, start time.Time) {
	code := string(apperrors.ErrCodeInternal)
	if stdErr, ok := apperrors.AsStandardError(err); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(r.TaskType, code).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.TaskType).Observe(time.Since(start).Seconds())
	r.Observability.RecordJob(context.Background(), r.TaskType, "failed", time.Since(start))
	r.Errors.HandleJobError(context.Background(), client, job, err)
}
