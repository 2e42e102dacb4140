package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

var (
	ErrParseStrToLevel = errors.New("string can't be parsed to level, use: `error`, `info`, `debug`")
)

type Level int

const (
	ERR Level = iota
	INF
	DBG
)

func (l Level) String() string { return [3]string{"Error", "Info", "Debug"}[l] }

func (l Level) hclog() hclog.Level {
	return [3]hclog.Level{hclog.Error, hclog.Info, hclog.Debug}[l]
}

// NewStdLog builds the application logger. Defaults: info level, stderr, no color.
func NewStdLog(opts ...Option) hclog.Logger {
	o := &hclog.LoggerOptions{
		Name:   "reframer",
		Level:  INF.hclog(),
		Output: os.Stderr,
		Color:  hclog.ColorOff,
	}
	for _, opt := range opts {
		opt(o)
	}
	return hclog.New(o)
}

type Option func(o *hclog.LoggerOptions)

func WithLevel(level Level) Option { return func(o *hclog.LoggerOptions) { o.Level = level.hclog() } }

func WithOutput(w io.Writer) Option { return func(o *hclog.LoggerOptions) { o.Output = w } }

func WithJSON() Option { return func(o *hclog.LoggerOptions) { o.JSONFormat = true } }

func WithLocation() Option { return func(o *hclog.LoggerOptions) { o.IncludeLocation = true } }

func ParseLevel(lvl string) (Level, error) {
	levels := map[string]Level{
		strings.ToLower(ERR.String()): ERR,
		strings.ToLower(INF.String()): INF,
		strings.ToLower(DBG.String()): DBG,
	}
	level, ok := levels[strings.ToLower(lvl)]
	if !ok {
		return INF, fmt.Errorf("%s %w", lvl, ErrParseStrToLevel)
	}
	return level, nil
}
