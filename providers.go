package winterm

import (
	"context"
	"io"
	"time"
)

// --- Logger ---

// Logger receives diagnostic messages. The terminal layer logs only from the
// third-party ANSI probe; everything else degrades silently.
type Logger interface {
	// Logf records one formatted message.
	Logf(format string, args ...any)
}

// NoopLogger discards all messages.
type NoopLogger struct{}

func (NoopLogger) Logf(format string, args ...any) {}

// --- Command Runner ---

// DefaultRunTimeout bounds how long a CommandRunner's background reaper
// waits on a spawned process after its output pipe closes.
const DefaultRunTimeout = 1000 * time.Millisecond

// CommandRunner executes a child command and streams its captured output.
// Process execution lives outside the terminal codec: implementations are
// expected to tie the child to an OS job object (or equivalent) so the whole
// process tree is torn down when the context is cancelled, the reaper times
// out, or the parent exits. A CommandRunner shares no state with a Terminal.
type CommandRunner interface {
	// Run starts command, copies its output into w until the child closes
	// its output pipe, and returns the exit code.
	Run(ctx context.Context, command string, w io.Writer) (int, error)
}

// Ensure the no-op implementations satisfy their interfaces.
var _ Logger = NoopLogger{}
