package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
)

// consoleLogger writes colored status lines. It always writes to the error
// stream so that `--stdout` output stays clean.
type consoleLogger struct {
	out    io.Writer
	prefix func() string
}

func newConsoleLogger(out io.Writer) *consoleLogger {
	return &consoleLogger{
		out: out,
		prefix: func() string {
			return color.Gray.Sprint("[" + time.Now().Format("15:04:05") + "]")
		},
	}
}

func (logger *consoleLogger) Infof(format string, args ...interface{}) {
	fmt.Fprintln(logger.out, logger.prefix(), fmt.Sprintf(format, args...))
}

func (logger *consoleLogger) Successf(format string, args ...interface{}) {
	fmt.Fprintln(logger.out, logger.prefix(), color.Green.Sprintf(format, args...))
}

func (logger *consoleLogger) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(logger.out, logger.prefix(), color.Red.Sprintf(format, args...))
}
