package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/mfell/workspace-agent/internal/calendar"
	"github.com/mfell/workspace-agent/internal/docs"
	"github.com/mfell/workspace-agent/internal/drive"
	"github.com/mfell/workspace-agent/internal/gmail"
	"github.com/mfell/workspace-agent/internal/instrumentation"
	"github.com/mfell/workspace-agent/internal/meet"
	"github.com/mfell/workspace-agent/internal/people"
	"github.com/mfell/workspace-agent/internal/sheets"
	"github.com/mfell/workspace-agent/internal/tasks"
)

// clientCache lazily creates and caches one client per account. Clients
// live for the process lifetime and are never invalidated.
type clientCache[T any] struct {
	mu      sync.Mutex
	clients map[string]T
	create  func(ctx context.Context, account string) (T, error)
}

func newClientCache[T any](create func(ctx context.Context, account string) (T, error)) *clientCache[T] {
	return &clientCache[T]{
		clients: make(map[string]T),
		create:  create,
	}
}

func (c *clientCache[T]) get(ctx context.Context, account string) (T, error) {
	if account == "" {
		account = "default"
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[account]; ok {
		return client, nil
	}

	client, err := c.create(ctx, account)
	if err != nil {
		var zero T
		return zero, err
	}

	c.clients[account] = client
	return client, nil
}

// Context holds the shared state behind the tool registry: per-account
// Google service clients and the local contact store. Authentication
// happens once per account and service; subsequent tool calls reuse the
// cached client.
type Context struct {
	ctx    context.Context
	cancel context.CancelFunc

	gmailClients    *clientCache[*gmail.Client]
	calendarClients *clientCache[*calendar.Client]
	docsClients     *clientCache[*docs.Client]
	driveClients    *clientCache[*drive.Client]
	meetClients     *clientCache[*meet.Client]
	sheetsClients   *clientCache[*sheets.Client]
	tasksClients    *clientCache[*tasks.Client]
	peopleClients   *clientCache[*people.Client]

	contactStore *people.Store

	mu          sync.RWMutex
	shutdown    bool
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
}

// NewContext creates a new server context. contactFile selects the local
// contact store path; empty means the default peoples.txt in the working
// directory.
func NewContext(ctx context.Context, contactFile string) *Context {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &Context{
		ctx:             shutdownCtx,
		cancel:          cancel,
		gmailClients:    newClientCache(gmail.NewClientForAccount),
		calendarClients: newClientCache(calendar.NewClientForAccount),
		docsClients:     newClientCache(docs.NewClientForAccount),
		driveClients:    newClientCache(drive.NewClientForAccount),
		meetClients:     newClientCache(meet.NewClientForAccount),
		sheetsClients:   newClientCache(sheets.NewClientForAccount),
		tasksClients:    newClientCache(tasks.NewClientForAccount),
		peopleClients:   newClientCache(people.NewClientForAccount),
		contactStore:    people.NewStore(contactFile),
	}
}

// Context returns the server's base context
func (sc *Context) Context() context.Context {
	return sc.ctx
}

// GmailClientForAccount returns the cached Gmail client for an account,
// creating it on first use
func (sc *Context) GmailClientForAccount(account string) (*gmail.Client, error) {
	return sc.gmailClients.get(sc.ctx, account)
}

// CalendarClientForAccount returns the cached Calendar client for an account
func (sc *Context) CalendarClientForAccount(account string) (*calendar.Client, error) {
	return sc.calendarClients.get(sc.ctx, account)
}

// DocsClientForAccount returns the cached Docs client for an account
func (sc *Context) DocsClientForAccount(account string) (*docs.Client, error) {
	return sc.docsClients.get(sc.ctx, account)
}

// DriveClientForAccount returns the cached Drive client for an account
func (sc *Context) DriveClientForAccount(account string) (*drive.Client, error) {
	return sc.driveClients.get(sc.ctx, account)
}

// MeetClientForAccount returns the cached Meet client for an account
func (sc *Context) MeetClientForAccount(account string) (*meet.Client, error) {
	return sc.meetClients.get(sc.ctx, account)
}

// SheetsClientForAccount returns the cached Sheets client for an account
func (sc *Context) SheetsClientForAccount(account string) (*sheets.Client, error) {
	return sc.sheetsClients.get(sc.ctx, account)
}

// TasksClientForAccount returns the cached Tasks client for an account
func (sc *Context) TasksClientForAccount(account string) (*tasks.Client, error) {
	return sc.tasksClients.get(sc.ctx, account)
}

// PeopleClientForAccount returns the cached People client for an account
func (sc *Context) PeopleClientForAccount(account string) (*people.Client, error) {
	return sc.peopleClients.get(sc.ctx, account)
}

// ContactStore returns the local contact store
func (sc *Context) ContactStore() *people.Store {
	return sc.contactStore
}

// SetGmailClientForAccount seeds the Gmail cache, mainly for tests
func (sc *Context) SetGmailClientForAccount(account string, client *gmail.Client) {
	if account == "" {
		account = "default"
	}
	sc.gmailClients.mu.Lock()
	defer sc.gmailClients.mu.Unlock()
	sc.gmailClients.clients[account] = client
}

// SetMetrics attaches a metrics recorder to the context. Tool wrappers read
// it on every invocation; nil disables recording.
func (sc *Context) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when none is configured
func (sc *Context) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger attaches an audit logger to the context
func (sc *Context) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil when none is configured
func (sc *Context) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shut down
func (sc *Context) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *Context) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}

// ErrNoClient formats the error returned when a tool cannot obtain a
// service client for an account.
func ErrNoClient(service, account string, err error) error {
	return fmt.Errorf("failed to get %s client for account %s: %w", service, account, err)
}
