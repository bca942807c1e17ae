package typhoon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/resilience"
)

// Client talks to the OCR service over its job-based HTTP API: a multipart
// upload opens a job, and the job is then polled until the recognized text is
// ready.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Option func(*Client)

func WithExecutor(executor *resilience.Executor) Option {
	return func(c *Client) { c.executor = executor }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type submitResponse struct {
	JobID string `json:"job_id"`
}

type statusResponse struct {
	Status     string  `json:"status"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

const (
	jobStatusDone   = "done"
	jobStatusFailed = "failed"
)

// Submit uploads the file and returns the job identifier. Connectivity
// failures come back wrapped as temporary so callers can retry the whole
// document later.
func (c *Client) Submit(ctx context.Context, fileName string, content io.Reader) (string, error) {
	const operation = "ocr.submit"

	// The upload body is consumed on the first attempt, so retries happen
	// at the document level, not here.
	var response submitResponse
	err := c.postFile(ctx, "/v1/jobs", fileName, content, &response, operation)
	if err != nil {
		return "", wrapTemporaryIfNeeded(operation, err)
	}
	if strings.TrimSpace(response.JobID) == "" {
		return "", fmt.Errorf("ocr submit: empty job id in response")
	}
	return response.JobID, nil
}

// GetStatus reports the state of one job: (nil, nil) while it is still
// running or has not produced text yet, a final result once text is ready,
// an error when the service failed the job.
func (c *Client) GetStatus(ctx context.Context, jobID string) (*domain.RecognitionResult, error) {
	const operation = "ocr.status"

	call := func(ctx context.Context) (*statusResponse, error) {
		var response statusResponse
		if err := c.getJSON(ctx, "/v1/jobs/"+jobID, &response, operation); err != nil {
			return nil, err
		}
		return &response, nil
	}

	var response *statusResponse
	var err error
	if c.executor != nil {
		err = c.executor.Do(ctx, operation, classifyRecognitionError, func(ctx context.Context) error {
			response, err = call(ctx)
			return err
		})
	} else {
		response, err = call(ctx)
	}
	if err != nil {
		return nil, wrapTemporaryIfNeeded(operation, err)
	}

	switch response.Status {
	case jobStatusDone:
		// A result is final only once text is present; a done job with an
		// empty payload is still not ready.
		if strings.TrimSpace(response.Text) == "" {
			return nil, nil
		}
		return &domain.RecognitionResult{
			JobID:      jobID,
			Text:       response.Text,
			Confidence: response.Confidence,
		}, nil
	case jobStatusFailed:
		return nil, fmt.Errorf("ocr job %s failed: %s", jobID, response.Error)
	default:
		return nil, nil
	}
}
