package sdi12

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/tarm/serial"

	"github.com/envsense/sditerm/logger"
)

// fakePort is an in-memory serial port scripting a sensor on the far end.
// Each queued response is drained across Read calls; an empty queue behaves
// like an exhausted read timeout (io.EOF, matching tarm/serial).
type fakePort struct {
	reads  [][]byte
	writes [][]byte

	writeErr error
	readErr  error
	closeErr error
	closed   bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}

	buf := make([]byte, len(b))
	copy(buf, b)
	p.writes = append(p.writes, buf)

	return len(b), nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	if p.readErr != nil {
		return 0, p.readErr
	}
	if len(p.reads) == 0 {
		return 0, io.EOF
	}

	chunk := p.reads[0]
	n := copy(b, chunk)
	if n < len(chunk) {
		p.reads[0] = chunk[n:]
	} else {
		p.reads = p.reads[1:]
	}

	return n, nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return p.closeErr
}

func (p *fakePort) queueResponse(resp string) {
	p.reads = append(p.reads, []byte(resp))
}

func (p *fakePort) written() []string {
	out := make([]string, len(p.writes))
	for i, w := range p.writes {
		out[i] = string(w)
	}

	return out
}

// openResult is one scripted outcome of fakeOpener.
type openResult struct {
	port *fakePort
	err  error
}

// fakeOpener scripts successive PortOpener outcomes and records the configs
// it was called with. The last result is reused once the script runs out.
type fakeOpener struct {
	results []openResult
	opened  []*serial.Config
}

func (o *fakeOpener) open(cfg *serial.Config) (io.ReadWriteCloser, error) {
	o.opened = append(o.opened, cfg)

	if len(o.results) == 0 {
		return &fakePort{}, nil
	}

	res := o.results[0]
	if len(o.results) > 1 {
		o.results = o.results[1:]
	}

	if res.err != nil {
		return nil, res.err
	}

	return res.port, nil
}

// recordLogger captures log messages in emission order for assertions.
type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

var _ logger.Logger = (*recordLogger)(nil)

func newRecordLogger() *recordLogger {
	return &recordLogger{}
}

func (l *recordLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, msg)
}

func (l *recordLogger) Debug(msg string, keysAndValues ...any) { l.record(msg) }
func (l *recordLogger) Info(msg string, keysAndValues ...any)  { l.record(msg) }
func (l *recordLogger) Warn(msg string, keysAndValues ...any)  { l.record(msg) }
func (l *recordLogger) Error(msg string, keysAndValues ...any) { l.record(msg) }
func (l *recordLogger) Fatal(msg string, keysAndValues ...any) { l.record(msg) }

func (l *recordLogger) With(keyValues ...any) logger.Logger { return l }
func (l *recordLogger) Level() logger.LogLevel              { return logger.DebugLevel }
func (l *recordLogger) SetLevel(level logger.LogLevel)      {}

// indexOf returns the position of the first captured message containing
// substr, or -1 when absent.
func (l *recordLogger) indexOf(substr string) int {
	return l.indexOfFrom(substr, 0)
}

// indexOfFrom is indexOf starting the scan at position from.
func (l *recordLogger) indexOfFrom(substr string, from int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := from; i < len(l.lines); i++ {
		if strings.Contains(l.lines[i], substr) {
			return i
		}
	}

	return -1
}

func (l *recordLogger) contains(substr string) bool {
	return l.indexOf(substr) >= 0
}

// testConfig builds a SessionConfig with a zero settle delay and the given
// opener and logger, keeping exchange tests fast.
func testConfig(tb testing.TB, opener PortOpener, log logger.Logger, opts ...SessionOption) *SessionConfig {
	tb.Helper()

	base := []SessionOption{
		WithSettleDelay(0),
		WithPortOpener(opener),
		WithLogger(log),
	}

	cfg, err := NewSessionConfig(append(base, opts...)...)
	if err != nil {
		tb.Fatalf("build session config: %v", err)
	}

	return cfg
}
