package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sarabun-dev/sarabun-core/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type scriptedRecognition struct {
	pendingCalls int
	failCalls    int
	result       *domain.RecognitionResult
	statusCalls  int
	submitCalls  int
	submitErr    error
	onStatus     func(call int)
}

func (s *scriptedRecognition) Submit(ctx context.Context, fileName string, content io.Reader) (string, error) {
	s.submitCalls++
	if s.submitErr != nil {
		return "", s.submitErr
	}
	return "job-1", nil
}

func (s *scriptedRecognition) GetStatus(ctx context.Context, jobID string) (*domain.RecognitionResult, error) {
	s.statusCalls++
	if s.onStatus != nil {
		s.onStatus(s.statusCalls)
	}
	if s.failCalls > 0 {
		s.failCalls--
		return nil, errors.New("connection reset")
	}
	if s.pendingCalls > 0 {
		s.pendingCalls--
		return nil, nil
	}
	return s.result, nil
}

type fakeDocumentRepo struct {
	docs        map[string]domain.DocumentRecord
	createErr   error
	updateErr   error
	forceStatus domain.WorkflowStatus
	updates     int
}

func newFakeDocumentRepo(docs ...domain.DocumentRecord) *fakeDocumentRepo {
	repo := &fakeDocumentRepo{docs: make(map[string]domain.DocumentRecord)}
	for _, d := range docs {
		repo.docs[d.ID] = d
	}
	return repo
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *domain.DocumentRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.docs[doc.ID] = *doc
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*domain.DocumentRecord, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "fake.get", fmt.Errorf("id %s", id))
	}
	copied := doc
	return &copied, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context, filter domain.ListFilter) ([]domain.DocumentRecord, error) {
	var out []domain.DocumentRecord
	for _, d := range r.docs {
		if filter.Direction != "" && d.Direction != filter.Direction {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDocumentRepo) UpdateDetails(ctx context.Context, doc *domain.DocumentRecord) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.docs[doc.ID]
	if !ok {
		return domain.WrapError(domain.ErrDocumentNotFound, "fake.update", fmt.Errorf("id %s", doc.ID))
	}
	updated := *doc
	updated.Status = stored.Status
	updated.CompletedBy = stored.CompletedBy
	r.docs[doc.ID] = updated
	r.updates++
	return nil
}

func (r *fakeDocumentRepo) UpdateStatusFrom(ctx context.Context, id string, from, to domain.WorkflowStatus, completedBy string) error {
	doc, ok := r.docs[id]
	if !ok {
		return domain.WrapError(domain.ErrDocumentNotFound, "fake.status", fmt.Errorf("id %s", id))
	}
	current := doc.Status
	if r.forceStatus != "" {
		current = r.forceStatus
	}
	if current != from {
		return domain.WrapError(domain.ErrConflict, "fake.status", fmt.Errorf("status is %s", current))
	}
	doc.Status = to
	doc.CompletedBy = completedBy
	r.docs[id] = doc
	return nil
}

type fakeEventRepo struct {
	events    []domain.WorkflowEvent
	appendErr error
}

func (r *fakeEventRepo) Append(ctx context.Context, event *domain.WorkflowEvent) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) ListByDocument(ctx context.Context, documentID string) ([]domain.WorkflowEvent, error) {
	var out []domain.WorkflowEvent
	for _, e := range r.events {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeStorage struct {
	files   map[string][]byte
	saveErr error
	openErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	path := "uploads/" + name
	s.files[path] = data
	return path, nil
}

func (s *fakeStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("no stored file at %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type fakeQueue struct {
	published  []string
	publishErr error
}

func (q *fakeQueue) PublishDocumentReceived(ctx context.Context, documentID string) error {
	if q.publishErr != nil {
		return q.publishErr
	}
	q.published = append(q.published, documentID)
	return nil
}

func (q *fakeQueue) SubscribeDocumentReceived(ctx context.Context, handler func(ctx context.Context, documentID string) error) error {
	return nil
}

func (q *fakeQueue) Close() {}

type fakeProbe struct {
	text string
	err  error
}

func (p *fakeProbe) ExtractText(ctx context.Context, r io.Reader) (string, error) {
	return p.text, p.err
}

type fakeExtractor struct {
	fields domain.ExtractedFields
	inputs []string
}

func (e *fakeExtractor) Extract(text string) domain.ExtractedFields {
	e.inputs = append(e.inputs, text)
	fields := e.fields
	fields.RawText = text
	return fields
}
