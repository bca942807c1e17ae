package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

func TestPollerWaitsThroughPendingTicks(t *testing.T) {
	client := &scriptedRecognition{
		pendingCalls: 3,
		result:       &domain.RecognitionResult{JobID: "job-1", Text: "เรื่อง ทดสอบ", Confidence: 0.93},
	}
	poller := NewResultPoller(client, 5*time.Millisecond, time.Second, testLogger())

	start := time.Now()
	result, err := poller.Wait(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if result.Text != "เรื่อง ทดสอบ" {
		t.Fatalf("result text = %q", result.Text)
	}
	if client.statusCalls != 4 {
		t.Fatalf("status calls = %d, want 4", client.statusCalls)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected at least three full intervals, elapsed %s", elapsed)
	}
}

func TestPollerTimesOut(t *testing.T) {
	client := &scriptedRecognition{pendingCalls: 1 << 30}
	poller := NewResultPoller(client, 5*time.Millisecond, 30*time.Millisecond, testLogger())

	start := time.Now()
	_, err := poller.Wait(context.Background(), "job-1")
	if !domain.IsKind(err, domain.ErrRecognitionTimeout) {
		t.Fatalf("Wait() = %v, want ErrRecognitionTimeout", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("timed out before the budget was spent, elapsed %s", elapsed)
	}
}

func TestPollerAbsorbsStatusErrors(t *testing.T) {
	client := &scriptedRecognition{
		failCalls: 2,
		result:    &domain.RecognitionResult{JobID: "job-1", Text: "ok"},
	}
	poller := NewResultPoller(client, time.Millisecond, time.Second, testLogger())

	result, err := poller.Wait(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("Wait() error = %v, status failures must not abort the wait", err)
	}
	if result == nil || result.Text != "ok" {
		t.Fatalf("result = %+v", result)
	}
}

func TestPollerHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &scriptedRecognition{pendingCalls: 1 << 30}
	client.onStatus = func(int) { cancel() }
	poller := NewResultPoller(client, time.Hour, time.Hour, testLogger())

	_, err := poller.Wait(ctx, "job-1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Wait() = %v, want context.Canceled", err)
	}
}

func TestPollerSyntheticProgress(t *testing.T) {
	client := &scriptedRecognition{
		pendingCalls: 12,
		result:       &domain.RecognitionResult{JobID: "job-1", Text: "done"},
	}
	poller := NewResultPoller(client, time.Millisecond, time.Second, testLogger())

	var reported []int
	poller.OnProgress = func(jobID string, percent int) {
		reported = append(reported, percent)
	}

	if _, err := poller.Wait(context.Background(), "job-1"); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if len(reported) == 0 {
		t.Fatalf("expected progress reports")
	}
	for i, p := range reported[:len(reported)-1] {
		if p > progressCeiling {
			t.Fatalf("pre-completion progress %d exceeded ceiling at tick %d", p, i)
		}
		if i > 0 && p < reported[i-1] {
			t.Fatalf("progress went backwards: %v", reported)
		}
	}
	if last := reported[len(reported)-1]; last != progressDone {
		t.Fatalf("final progress = %d, want %d", last, progressDone)
	}
}
