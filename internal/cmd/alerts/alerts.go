// Package alerts formats the status lines catalog commands print after they
// touch the store.
package alerts

import (
	"fmt"
	"time"
)

// Alert represents a status notification printed by a command.
type Alert struct {
	Level     Level
	Message   string
	Details   []string
	Timestamp time.Time
	Err       error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// ItemSaved reports a created or updated record. message is the text the
// web form shows for the same outcome.
func ItemSaved(message, id string) *Alert {
	return NewSuccess(message).WithDetails("id: " + id)
}

// ItemRemoved reports a deleted record.
func ItemRemoved(id string) *Alert {
	return NewSuccess("Removed item").WithDetails("id: " + id)
}

// InvalidRecord describes one seed record that failed validation.
type InvalidRecord struct {
	Index int
	Title string
	Err   error
}

// RecordsSkipped warns that an import left records out, one detail line
// per record.
func RecordsSkipped(records []InvalidRecord) *Alert {
	details := make([]string, 0, len(records))
	for _, r := range records {
		details = append(details, fmt.Sprintf("record %d (%q): %v", r.Index, r.Title, r.Err))
	}
	return NewWarning(fmt.Sprintf("Skipping %d invalid records", len(records))).
		WithDetails(details...)
}

// Imported lists the imported titles. A dry run reports what would have
// been written.
func Imported(titles []string, dryRun bool) *Alert {
	if dryRun {
		return NewInfo(fmt.Sprintf("Would import %d items", len(titles))).WithDetails(titles...)
	}
	return NewSuccess(fmt.Sprintf("Imported %d items", len(titles))).WithDetails(titles...)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	message := fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
	if a.Err != nil {
		message += fmt.Sprintf(": %v", a.Err)
	}
	return message
}

// Writer prints alerts for a command.
type Writer interface {
	WriteAlert(alert *Alert) error
}
