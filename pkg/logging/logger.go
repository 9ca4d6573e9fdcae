// Package logging provides run-scoped file logging. Every invocation of
// the tool gets one log file under ~/.gradebatch/logs keyed by a run ID,
// and every component tags its lines, so a failed batch can be
// reconstructed after the fact without rerunning the browser.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	runID     string
	runIDOnce sync.Once

	logDir  string
	dirOnce sync.Once
	dirErr  error
)

// RunID returns the identifier for this process's run. Stable for the
// process lifetime; also used as the report identifier.
func RunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

func initLogDir() error {
	dirOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			dirErr = fmt.Errorf("failed to resolve home directory: %w", err)
			return
		}
		logDir = filepath.Join(home, ".gradebatch", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			dirErr = fmt.Errorf("failed to create log directory: %w", err)
		}
	})
	return dirErr
}

// Logger writes component-tagged lines to the run's shared log file.
// All methods are safe on a nil receiver, so packages can carry an
// optional logger without guarding every call.
type Logger struct {
	component string
	out       *log.Logger
	file      *os.File
	mu        sync.Mutex
	path      string
	closeOnce sync.Once
}

// New creates a logger for one component. Multiple components append to
// the same run file. If the file cannot be opened the logger falls back
// to stderr and the error is returned alongside the usable logger.
func New(component string) (*Logger, error) {
	if err := initLogDir(); err != nil {
		return fallback(component, err), err
	}

	path := filepath.Join(logDir, RunID()+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return fallback(component, err), err
	}

	return &Logger{
		component: component,
		out:       log.New(file, "", 0),
		file:      file,
		path:      path,
	}, nil
}

// Named returns a logger for a sub-component sharing this logger's
// output. Safe on nil.
func (l *Logger) Named(component string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		component: component,
		out:       l.out,
		file:      nil, // parent owns the file
		path:      l.path,
	}
}

func fallback(component string, err error) *Logger {
	out := log.New(os.Stderr, "", 0)
	l := &Logger{component: component, out: out}
	l.Warnf("file logging unavailable, using stderr: %v", err)
	return l
}

func (l *Logger) write(level, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	stamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.out.Printf("[%s] [%s] [%s] %s", stamp, l.component, level, fmt.Sprintf(format, v...))
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs at warning level.
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// Path returns the log file location, empty in fallback mode.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close releases the log file. Safe to call repeatedly and on nil, and a
// no-op for loggers derived with Named.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}
