package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
	"github.com/sarabun-dev/sarabun-core/internal/core/ports"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultPollTimeout  = 2 * time.Minute

	// Synthetic progress: the OCR service reports no percentage, so each
	// poll tick advances a local estimate that parks at 90 until the job
	// actually finishes.
	progressStep    = 10
	progressCeiling = 90
	progressDone    = 100
)

// ResultPoller waits for an OCR job to finish by polling at a fixed interval
// until a result arrives or the timeout budget is spent. Transient status
// errors are logged and absorbed; only the deadline or context cancellation
// ends the wait without a result.
type ResultPoller struct {
	client   ports.RecognitionClient
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	// OnProgress, when set, receives the synthetic completion estimate
	// after every tick.
	OnProgress func(jobID string, percent int)
}

func NewResultPoller(client ports.RecognitionClient, interval, timeout time.Duration, logger *slog.Logger) *ResultPoller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if timeout <= 0 {
		timeout = defaultPollTimeout
	}
	return &ResultPoller{
		client:   client,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Wait blocks until the job identified by jobID produces a result. It returns
// ErrRecognitionTimeout once the budget is exhausted and ctx.Err() when the
// caller gives up first.
func (p *ResultPoller) Wait(ctx context.Context, jobID string) (*domain.RecognitionResult, error) {
	const op = "poller.wait"

	deadline := time.Now().Add(p.timeout)
	progress := 0

	for {
		result, err := p.client.GetStatus(ctx, jobID)
		if err != nil {
			p.logger.Warn("recognition status check failed, will retry",
				slog.String("job_id", jobID),
				slog.String("error", err.Error()))
		}
		if result != nil {
			p.report(jobID, progressDone)
			return result, nil
		}

		if progress < progressCeiling {
			progress += progressStep
		}
		p.report(jobID, progress)

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, domain.WrapError(domain.ErrRecognitionTimeout, op,
				fmt.Errorf("job %s still pending after %s", jobID, p.timeout))
		}

		wait := p.interval
		if wait > remaining {
			wait = remaining
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (p *ResultPoller) report(jobID string, percent int) {
	if p.OnProgress != nil {
		p.OnProgress(jobID, percent)
	}
}
