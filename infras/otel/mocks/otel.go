package mocks

import (
	"context"
	"hotel/infras/otel"
	"sync"
)

// Otel hands out recording scopes and remembers them by name.
type Otel struct {
	mu     sync.Mutex
	scopes map[string]*Scope
}

// NewScope implements otel.Otel.
func (o *Otel) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	scope := &Scope{}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.scopes == nil {
		o.scopes = make(map[string]*Scope)
	}

	o.scopes[name] = scope

	return ctx, scope
}

// Scope returns the last scope opened under name, nil when none was.
func (o *Otel) Scope(name string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[name]
}

// Shutdown implements otel.Otel.
func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &Otel{}
}

// NewRecorder is NewOtel with the concrete type, for tests that inspect scopes.
func NewRecorder() *Otel {
	return &Otel{}
}
