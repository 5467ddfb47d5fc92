// Package mocks provides an in-process Otel that records span names instead of exporting them.
package mocks

import (
	"context"
	"sync"

	"hotel/infras/otel"
)

type Recorder struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

func NewOtel() *Recorder {
	return &Recorder{}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	r.spans = append(r.spans, spanName)
	r.mu.Unlock()

	return ctx, &scope{recorder: r}
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(context.Context) error {
	return nil
}

// Spans returns the names of every span opened so far.
func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

// Errors returns every error traced on any scope.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	if err == nil {
		return
	}

	s.recorder.mu.Lock()
	s.recorder.errors = append(s.recorder.errors, err)
	s.recorder.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	s.TraceError(err)
}

func (s *scope) AddEvent(string) {}

func (s *scope) SetAttribute(string, any) {}

func (s *scope) SetAttributes(map[string]any) {}
