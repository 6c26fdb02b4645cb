package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrTimerNotFound   = errors.New("timer not found")
	ErrTimerNotReady   = errors.New("timer is still being created")
)

// FieldErrors maps input field names to validation messages so callers
// can highlight the exact offending input instead of a single opaque
// failure.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(e))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return strings.Join(parts, "; ")
}
