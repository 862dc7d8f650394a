// Package logging configures the process-wide logrus logger: line format,
// level colors, optional append-to-file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/egoengine/clipmill/internal/term"
)

// Options controls logger construction.
type Options struct {
	Level     string    // "debug", "info", "warn", "error"; empty means info
	ColorMode term.Mode // resolved via term.Configure
	File      string    // optional append-to-file sink
}

// New builds the logger. Colors are configured globally as a side effect so
// display helpers share the same resolution. The returned closer releases
// the file sink when one was opened; it is safe to call either way.
func New(opts Options) (*logrus.Logger, func() error, error) {
	term.Configure(opts.ColorMode)

	log := logrus.New()
	log.SetFormatter(&lineFormatter{})

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q", opts.Level)
		}
		level = parsed
	}
	log.SetLevel(level)

	closer := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		log.SetOutput(io.MultiWriter(os.Stdout, f))
		closer = f.Close
	} else {
		log.SetOutput(os.Stdout)
	}

	return log, closer, nil
}

// lineFormatter renders "2006-01-02 15:04:05 [LEVEL] message key=value"
// with the level tag colored per severity when colors are enabled.
type lineFormatter struct{}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString(e.Time.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')

	label, color := levelTag(e.Level)
	if color != "" {
		b.WriteString(color)
	}
	b.WriteByte('[')
	b.WriteString(label)
	b.WriteByte(']')
	if color != "" {
		b.WriteString(term.NC)
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)

	if len(e.Data) > 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
		}
	}
	b.WriteByte('\n')

	return []byte(b.String()), nil
}

func levelTag(l logrus.Level) (string, string) {
	switch l {
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG", term.Cyan
	case logrus.WarnLevel:
		return "WARN", term.Yellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "ERROR", term.Red
	default:
		return "INFO", term.Blue
	}
}
