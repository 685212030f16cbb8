package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with additional functionality
type Logger struct {
	*logrus.Logger
}

// New creates a new logger instance
func New(level string) *Logger {
	log := logrus.New()

	// Set log level
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	// Set output format
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	// Set output destination
	log.SetOutput(os.Stdout)

	return &Logger{Logger: log}
}

// WithFields creates a new logger entry with the specified fields
func (l *Logger) WithFields(fields map[string]interface{}) *logrus.Entry {
	return l.Logger.WithFields(fields)
}

// WithField creates a new logger entry with a single field
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.Logger.WithField(key, value)
}

// WithError creates a new logger entry with an error field
func (l *Logger) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}

// WithStore creates a new logger entry with a store name field
func (l *Logger) WithStore(store string) *logrus.Entry {
	return l.Logger.WithField("store", store)
}

// WithComponent creates a new logger entry with component name field
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// RowSkipped logs a data row that failed parsing and was dropped.
// The raw row is included so corrupt lines can be located by hand.
func (l *Logger) RowSkipped(store string, row []string, err error) {
	l.Logger.WithFields(logrus.Fields{
		"store": store,
		"row":   row,
	}).WithError(err).Warn("Skipping malformed row")
}

// EnumFallback logs an unrecognized enum value that was replaced with a default
func (l *Logger) EnumFallback(store, field, value, fallback string) {
	l.Logger.WithFields(logrus.Fields{
		"store":    store,
		"field":    field,
		"value":    value,
		"fallback": fallback,
	}).Warn("Unknown enum value, using default")
}

// StoreOperation logs a flat-file store operation
func (l *Logger) StoreOperation(operation, store string, rows int, err error) {
	entry := l.Logger.WithFields(logrus.Fields{
		"operation": operation,
		"store":     store,
		"rows":      rows,
	})

	if err != nil {
		entry.WithError(err).Error("Store operation failed")
	} else {
		entry.Debug("Store operation completed")
	}
}

// AuthAttempt logs an authentication attempt. A failed login is a normal
// outcome, not an error, so both paths log at info level.
func (l *Logger) AuthAttempt(username string, success bool) {
	entry := l.Logger.WithFields(logrus.Fields{
		"auth":     true,
		"username": username,
		"success":  success,
	})

	if success {
		entry.Info("Authentication succeeded")
	} else {
		entry.Info("Authentication failed")
	}
}

// Audit logs audit events with structured format
func (l *Logger) Audit(userID, action, resource string, success bool, details map[string]interface{}) {
	entry := l.Logger.WithFields(logrus.Fields{
		"audit":    true,
		"user_id":  userID,
		"action":   action,
		"resource": resource,
		"success":  success,
		"details":  details,
	})

	if success {
		entry.Info("Audit event")
	} else {
		entry.Warn("Audit event failed")
	}
}
