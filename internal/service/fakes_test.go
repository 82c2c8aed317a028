package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/Skotchmaster/furnishing_catalog/internal/models"
	"github.com/Skotchmaster/furnishing_catalog/internal/repo"
	"github.com/Skotchmaster/furnishing_catalog/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return repo.New(testutil.NewDB(t))
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []EnquiryEmail
	err  error
}

func (m *fakeMailer) SendEnquiry(_ context.Context, data EnquiryEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, data)
	return nil
}

// queueRunner holds submitted tasks until RunAll is called.
type queueRunner struct {
	mu    sync.Mutex
	tasks []func()
	err   error
}

func (r *queueRunner) Submit(task func()) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *queueRunner) RunAll() {
	r.mu.Lock()
	tasks := r.tasks
	r.tasks = nil
	r.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

type publishedEvent struct {
	Topic string
	Key   string
	Event Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	ev, _ := event.(Event)
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: ev})
	return nil
}

func (p *fakePublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event.Type)
	}
	return out
}

type fakeIndex struct {
	indexed map[string]bool
	docs    map[string]models.Product
	hits    []string
	err     error
}

func (f *fakeIndex) IndexProduct(_ context.Context, p *models.Product) error {
	if f.indexed == nil {
		f.indexed = map[string]bool{}
		f.docs = map[string]models.Product{}
	}
	f.indexed[p.ID] = true
	f.docs[p.ID] = *p
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id string) error {
	delete(f.indexed, id)
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) SearchProducts(_ context.Context, _ string, _, _ int) (int64, []string, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.hits)), f.hits, nil
}

type storedObject struct {
	Key         string
	ContentType string
	Body        []byte
}

type fakeStore struct {
	objects []storedObject
	err     error
}

func (s *fakeStore) Put(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects = append(s.objects, storedObject{Key: key, ContentType: contentType, Body: b})
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

var errBoom = errors.New("boom")
