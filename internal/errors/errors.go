package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitlog/internal/logger"
)

// Format renders err for the terminal with an "Error: " prefix. Joined errors
// (such as validation failures) are listed one per line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		parts := joined.Unwrap()
		if len(parts) > 1 {
			var b strings.Builder
			b.WriteString("Error:")
			for _, p := range parts {
				b.WriteString("\n  - ")
				b.WriteString(p.Error())
			}
			return b.String()
		}
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err and exits with status 1. A nil error is a no-op.
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	logger.Error("command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
