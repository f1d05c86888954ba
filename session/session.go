package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/meysamhadeli/zendocs/report"
	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/meysamhadeli/zendocs/session/models"
	"github.com/meysamhadeli/zendocs/transport"
	"github.com/meysamhadeli/zendocs/transport/contracts"
)

// Phase is the lifecycle state of an upload session.
type Phase int

const (
	Idle Phase = iota
	FileSelected
	Submitting
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FileSelected:
		return "file_selected"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Message is an event driving a session transition.
type Message interface {
	isMessage()
}

// SelectFile offers a candidate archive for submission.
type SelectFile struct {
	Archive models.Archive
}

// Submit starts transmitting the selected archive. Context bounds the
// transport call and defaults to context.Background.
type Submit struct {
	Context context.Context
}

// TransportSucceeded delivers the service response for the attempt identified by Token.
type TransportSucceeded struct {
	Token uint64
	Raw   *reportmodels.RawResponse
}

// TransportFailed delivers a transport failure for the attempt identified by Token.
type TransportFailed struct {
	Token uint64
	Err   error
}

// Reset returns the session to Idle.
type Reset struct{}

func (SelectFile) isMessage()         {}
func (Submit) isMessage()             {}
func (TransportSucceeded) isMessage() {}
func (TransportFailed) isMessage()    {}
func (Reset) isMessage()              {}

// Ticket identifies one submission attempt. Done is closed once the attempt's
// resolution has been dispatched, whether it was applied or discarded as stale.
type Ticket struct {
	Token uint64
	Done  <-chan struct{}
}

// Wait blocks until the attempt resolves or ctx is done.
func (t Ticket) Wait(ctx context.Context) error {
	if t.Done == nil {
		return nil
	}
	select {
	case <-t.Done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot is a read-only view of the session handed to presentation code.
type Snapshot struct {
	Phase     Phase
	Selected  *models.Archive
	LastError error
	Report    *reportmodels.DocumentationReport
	Token     uint64
}

// Option configures a Session.
type Option func(*Session)

// WithObserver registers a callback invoked after every applied transition.
// Callbacks run under the session lock, in transition order, and must not
// call back into the session.
func WithObserver(observer func(Snapshot)) Option {
	return func(s *Session) {
		s.observers = append(s.observers, observer)
	}
}

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session governs the lifecycle of one archive submission at a time.
// Transitions are dispatched as messages and run to completion under a lock;
// the transport call is the only operation that runs asynchronously.
type Session struct {
	mu        sync.Mutex
	transport contracts.ITransportClient
	logger    *slog.Logger
	observers []func(Snapshot)

	phase     Phase
	selected  *models.Archive
	lastError error
	report    *reportmodels.DocumentationReport

	// lastToken is the last issued token; inflight is the token of the current
	// Submitting attempt, zero when nothing is awaited.
	lastToken uint64
	inflight  uint64
	pending   models.Archive
	ticket    Ticket
}

// New creates an idle session submitting through the given transport.
func New(transport contracts.ITransportClient, opts ...Option) *Session {
	s := &Session{
		transport: transport,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectFile validates and selects a candidate archive.
func (s *Session) SelectFile(candidate models.Archive) error {
	return s.Dispatch(SelectFile{Archive: candidate})
}

// Submit transmits the selected archive. Calling Submit while an attempt is
// in flight returns that attempt's ticket without issuing a second request.
func (s *Session) Submit(ctx context.Context) (Ticket, error) {
	ticket, err := s.dispatch(Submit{Context: ctx})
	return ticket, err
}

// Reset discards the selection, error and report and returns to Idle.
func (s *Session) Reset() {
	_ = s.Dispatch(Reset{})
}

// Snapshot returns the current state. The report is a private copy.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Dispatch applies one message to the session.
func (s *Session) Dispatch(msg Message) error {
	_, err := s.dispatch(msg)
	return err
}

func (s *Session) dispatch(msg Message) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.phase
	ticket, changed, err := s.apply(msg)
	if !changed {
		return ticket, err
	}

	snapshot := s.snapshotLocked()
	s.logger.Debug("session transition",
		"from", from.String(),
		"to", snapshot.Phase.String(),
		"session_token", snapshot.Token,
	)
	for _, observer := range s.observers {
		observer(snapshot)
	}

	return ticket, err
}

func (s *Session) apply(msg Message) (Ticket, bool, error) {
	switch m := msg.(type) {
	case SelectFile:
		err := s.applySelect(m.Archive)
		return Ticket{}, err == nil, err
	case Submit:
		return s.applySubmit(m.Context)
	case TransportSucceeded:
		return Ticket{}, s.applyResolution(m.Token, m.Raw, nil), nil
	case TransportFailed:
		err := m.Err
		if err == nil {
			err = errors.New("transport failed without an error")
		}
		return Ticket{}, s.applyResolution(m.Token, nil, err), nil
	case Reset:
		s.phase = Idle
		s.selected = nil
		s.lastError = nil
		s.report = nil
		s.inflight = 0
		return Ticket{}, true, nil
	default:
		return Ticket{}, false, nil
	}
}

func (s *Session) applySelect(candidate models.Archive) error {
	if !IsArchive(candidate) {
		return &ValidationError{Kind: NotAnArchive, Name: candidate.Name}
	}

	// A new selection supersedes any in-flight attempt; its response will be
	// discarded by the token check.
	s.phase = FileSelected
	s.selected = &candidate
	s.lastError = nil
	s.report = nil
	s.inflight = 0
	return nil
}

func (s *Session) applySubmit(ctx context.Context) (Ticket, bool, error) {
	if s.phase == Submitting {
		return s.ticket, false, nil
	}
	if s.selected == nil {
		return Ticket{}, false, &ValidationError{Kind: NoFileSelected}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.lastToken++
	token := s.lastToken
	done := make(chan struct{})

	s.phase = Submitting
	s.inflight = token
	s.pending = *s.selected
	s.lastError = nil
	s.report = nil
	s.ticket = Ticket{Token: token, Done: done}

	go s.transmit(ctx, token, s.pending, done)

	return s.ticket, true, nil
}

func (s *Session) transmit(ctx context.Context, token uint64, archive models.Archive, done chan struct{}) {
	defer close(done)

	raw, err := s.transport.SubmitArchive(ctx, archive)
	if err != nil {
		_ = s.Dispatch(TransportFailed{Token: token, Err: err})
		return
	}
	_ = s.Dispatch(TransportSucceeded{Token: token, Raw: raw})
}

func (s *Session) applyResolution(token uint64, raw *reportmodels.RawResponse, transportErr error) bool {
	if s.phase != Submitting || token != s.inflight {
		s.logger.Debug("discarding stale transport resolution",
			"session_token", token,
			"current_token", s.inflight,
			"phase", s.phase.String(),
		)
		return false
	}
	s.inflight = 0

	if transportErr != nil {
		s.fail(transport.Classify(transportErr))
		return true
	}

	rep, err := report.BuildReport(raw, s.pending.Name)
	if err != nil {
		s.fail(err)
		return true
	}

	s.phase = Succeeded
	s.report = rep
	s.lastError = nil
	// The archive has been consumed; a new upload needs a new selection.
	s.selected = nil
	return true
}

func (s *Session) fail(err error) {
	s.phase = Failed
	s.lastError = err
	s.report = nil
	s.logger.Debug("submission failed", "error", err)
}

func (s *Session) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		Phase:     s.phase,
		LastError: s.lastError,
		Report:    s.report.Clone(),
		Token:     s.lastToken,
	}
	if s.selected != nil {
		selected := *s.selected
		snapshot.Selected = &selected
	}
	return snapshot
}
