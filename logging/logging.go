// Package logging sets up the global zerolog logger.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "2006-01-02 15:04:05.000"

var mu sync.Mutex

type Config struct {
	Level string
	// File enables a rotating log file in addition to stderr if not empty.
	File      string
	Formatted bool
	MaxSize   int
	MaxFiles  int
}

// consoleWriter reports len(p) since ConsoleWriter rewrites the entry and
// zerolog fails with short write on a different length.
type consoleWriter struct {
	zerolog.ConsoleWriter
}

func (c consoleWriter) WriteLevel(_ zerolog.Level, p []byte) (int, error) {
	_, err := c.ConsoleWriter.Write(p)
	return len(p), err
}

type fileWriter struct {
	*lumberjack.Logger
	formatted bool
}

func (f fileWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if !f.formatted {
		return f.Logger.Write(p)
	}
	line, err := formatEntry(level, p)
	if err != nil {
		return f.Logger.Write(p)
	}
	_, err = f.Logger.Write([]byte(line))
	return len(p), err
}

func formatEntry(level zerolog.Level, p []byte) (string, error) {
	var entry map[string]interface{}
	if err := json.Unmarshal(p, &entry); err != nil {
		return "", err
	}
	timestamp, _ := entry["time"].(string)
	message, _ := entry["message"].(string)

	var extras []string
	for k, v := range entry {
		switch k {
		case "time", "message", "level":
			continue
		}
		extras = append(extras, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(extras)

	return fmt.Sprintf("%s | %-5s | %s | %s\n",
		timestamp, level.String(), message, strings.Join(extras, " "),
	), nil
}

// New returns a logger writing to out and, if configured, to the log file.
func New(cfg Config, out io.Writer) (zerolog.Logger, error) {
	writers := []io.Writer{
		consoleWriter{ConsoleWriter: zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}},
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, fileWriter{
			Logger: &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxFiles,
			},
			formatted: cfg.Formatted,
		})
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger(), nil
}

// Init replaces the global logger.
func Init(cfg Config) error {
	l, err := New(cfg, os.Stderr)
	if err != nil {
		return err
	}
	zerolog.TimeFieldFormat = timeFormat

	mu.Lock()
	defer mu.Unlock()
	log.Logger = l
	return nil
}

// ParseLevel returns info for unknown levels.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}
