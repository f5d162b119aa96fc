// Package logger wraps charmbracelet/log behind a small leveled interface.
// Output goes to stderr unless configured otherwise.
package logger
