// Package services contains the session layer: the application state machine
// orchestrating settings persistence, authentication, sender enumeration,
// message fetching and send/hide handling, plus the pure helpers it relies on
// (time-window resolution, timestamp formatting, the filtered-sender view).
package services

// ResultKind enumerates the mutually exclusive result states of the session.
type ResultKind int

const (
	ResultInitial ResultKind = iota
	ResultLoading
	ResultSuccess
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultInitial:
		return "initial"
	case ResultLoading:
		return "loading"
	case ResultSuccess:
		return "success"
	case ResultError:
		return "error"
	}
	return "unknown"
}

// Result is the single current result state of the session. Exactly one value
// is current at any time; transitions are driven by the session operations,
// never by external input. There is no transition back to Initial.
//
// Err carries the underlying failure for Error results so callers can
// classify it with errors.Is against the common sentinel kinds. Message stays
// the user-facing text.
type Result struct {
	Kind    ResultKind
	Message string
	Err     error
}

func success(msg string) Result { return Result{Kind: ResultSuccess, Message: msg} }
func failure(msg string, err error) Result {
	return Result{Kind: ResultError, Message: msg, Err: err}
}

// OpStatus is the lifecycle of one tracked operation.
type OpStatus int

const (
	OpIdle OpStatus = iota
	OpRunning
	OpSucceeded
	OpFailed
)

func (s OpStatus) String() string {
	switch s {
	case OpIdle:
		return "idle"
	case OpRunning:
		return "running"
	case OpSucceeded:
		return "succeeded"
	case OpFailed:
		return "failed"
	}
	return "unknown"
}

// OpState is the per-operation state record. Each of the six tracked
// operations carries its own OpState so that, e.g., a send in flight does not
// block sender fetching. Subject holds the message ID for the send and hide
// operations while they run.
type OpState struct {
	Status  OpStatus
	Message string
	Subject string
}

// Busy reports whether the operation is currently running.
func (o OpState) Busy() bool { return o.Status == OpRunning }
