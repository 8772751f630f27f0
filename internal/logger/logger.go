package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const maxBufferSize = 1000

type Level string

const (
	LevelInfo      Level = "INFO"
	LevelWarn      Level = "WARN"
	LevelError     Level = "ERROR"
	LevelFileWrite Level = "FILE_WRITE"
)

var (
	instance *Logger
	mu       sync.Mutex
)

type LogEntry struct {
	Timestamp time.Time
	Level     Level
	Message   string
}

// Line renders the entry the way it is written to the log file.
func (e LogEntry) Line() string {
	return fmt.Sprintf("[%s] %s", e.Level, e.Message)
}

type Logger struct {
	file   *os.File
	logger *log.Logger
	mu     sync.Mutex
	buffer []LogEntry
}

// Init opens the session log file. An empty path keeps logging in memory only.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	l := &Logger{buffer: make([]LogEntry, 0, maxBufferSize)}
	if instance != nil {
		l.buffer = instance.buffer
		if instance.file != nil {
			instance.file.Close()
		}
	}
	instance = l

	if logPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = file
	l.logger = log.New(file, "", log.LstdFlags)
	return nil
}

func current() *Logger {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = &Logger{buffer: make([]LogEntry, 0, maxBufferSize)}
	}
	return instance
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil && instance.file != nil {
		err := instance.file.Close()
		instance.file = nil
		instance.logger = nil
		return err
	}
	return nil
}

// Reset drops every buffered entry. Used between test cases.
func Reset() {
	l := current()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buffer = l.buffer[:0]
}

func (l *Logger) write(level Level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	}

	if len(l.buffer) >= maxBufferSize {
		l.buffer = l.buffer[1:]
	}
	l.buffer = append(l.buffer, entry)

	if l.logger != nil {
		l.logger.Println(entry.Line())
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func Entries() []LogEntry {
	l := current()
	l.mu.Lock()
	defer l.mu.Unlock()

	logs := make([]LogEntry, len(l.buffer))
	copy(logs, l.buffer)
	return logs
}

func LogFileWrite(path string) {
	current().write(LevelFileWrite, path)
}

func LogError(operation, target string, err error) {
	current().write(LevelError, fmt.Sprintf("%s: %s - %v", operation, target, err))
}

func LogWarn(message string, args ...interface{}) {
	current().write(LevelWarn, fmt.Sprintf(message, args...))
}

func Log(message string, args ...interface{}) {
	current().write(LevelInfo, fmt.Sprintf(message, args...))
}
