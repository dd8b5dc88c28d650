// Package hydroerr defines the typed error values the hydraulic engine
// returns to its caller. The core never panics on a condition a caller can
// reasonably hit and never calls os.Exit; every fallible entry point in
// network, hydraulic and eps returns one of these, and cmd/hydrosolve is the
// only place that turns a Kind into a process exit code.
package hydroerr

import "fmt"

// Kind classifies an Error so callers can branch on category without
// string-matching the message.
type Kind int

const (
	// Input covers malformed files, unknown units, unresolved references,
	// duplicate ids, missing required fields. Fatal for the invocation.
	Input Kind = iota
	// Topology covers disconnected subgraphs with no fixed head, and
	// nodes of degree zero. Detected at solver setup; fatal.
	Topology
	// Numeric covers a singular Jacobian or a NaN entering the state.
	// The current time-step is aborted; partial results are returned.
	Numeric
	// NonConvergence covers exceeding max_iterations or max_check_trials.
	// Not fatal: best-effort state is kept and a warning flag is set.
	NonConvergence
	// Unsupported covers a feature explicitly not implemented (e.g. tank
	// volume curves, PBV/PCV valves). Fatal; never silently approximated.
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Topology:
		return "topology"
	case Numeric:
		return "numeric"
	case NonConvergence:
		return "non-convergence"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}

// Error is the concrete error type returned by the engine. Context carries
// whatever locates the problem: a file+line for input errors, a node/link id
// for topology errors, an iteration count for numeric/convergence errors.
type Error struct {
	Kind    Kind
	Context string
	Msg     string
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, e.Context)
}

// New builds an *Error with a formatted message, mirroring gosl/chk.Err's
// Printf-style error construction.
func New(kind Kind, context, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Context: context, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a hydroerr *Error of the given kind, for use
// with errors.Is-style call sites.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
