// Command sditerm is an interactive terminal for SDI-12 sensors.
//
// It prompts for a serial port, then reads commands from the operator and
// exchanges them with the sensor at 1200 baud. Every exchange is logged to
// the console and to a per-session log file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/chzyer/readline"

	"github.com/envsense/sditerm/logger"
	"github.com/envsense/sditerm/sdi12"
)

var (
	port    = flag.String("p", "", "serial port (usually /dev/tty* or COM*), prompted for when omitted")
	logDir  = flag.String("l", "logs", "directory for per-session log files")
	verbose = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()

	logFile, err := openSessionLog(*logDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	level := logger.InfoLevel
	if *verbose {
		level = logger.DebugLevel
	}
	log := logger.NewSessionSlog(logFile, level)

	input, err := newReadlineInput(*port)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer input.Close()

	cfg, err := sdi12.NewSessionConfig(sdi12.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	engine, err := sdi12.NewSessionEngine(cfg, input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Info("program started", "logFile", logFile.Name())

	runErr := engine.Run()

	log.Info("program exited")

	if runErr != nil {
		os.Exit(1)
	}
}

// openSessionLog creates the log directory if needed and opens a fresh
// append-only log file named after the session start time.
func openSessionLog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %q: %w", dir, err)
	}

	name := filepath.Join(dir, "log_"+time.Now().Format("2006-01-02_15-04-05")+".txt")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", name, err)
	}

	return f, nil
}

// readlineInput adapts a readline instance to sdi12.OperatorInput.
//
// When an initial port was given on the command line it is handed out as the
// first line, so the port prompt is satisfied without operator interaction.
type readlineInput struct {
	rl    *readline.Instance
	first string
}

func newReadlineInput(initialPort string) (*readlineInput, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}

	return &readlineInput{rl: rl, first: initialPort}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	if r.first != "" {
		line := r.first
		r.first = ""

		return line, nil
	}

	r.rl.SetPrompt(prompt)

	line, err := r.rl.Readline()
	if err != nil {
		// Ctrl-C and Ctrl-D both end the session.
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}

		return "", err
	}

	return line, nil
}

func (r *readlineInput) Close() error {
	return r.rl.Close()
}
