package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigurationError reports a weight configuration the engine cannot score
// with, such as weights summing to zero.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "scoring configuration: " + e.Reason
}

// ValidationError lists every offending field of a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records reason for field, replacing any earlier reason.
func (e *ValidationError) Add(field, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = reason
}

// DataError reports a supplier record that violates the metric preconditions.
type DataError struct {
	Field  string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("supplier data: %s %s", e.Field, e.Reason)
}
