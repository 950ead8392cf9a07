package logger

import (
	"flag"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	debugCalls []string
	infoCalls  []string
	warnCalls  []string
	errorCalls []string
}

func (m *mockLogger) Debugf(msg string, args ...any) {
	m.debugCalls = append(m.debugCalls, fmt.Sprintf(msg, args...))
}

func (m *mockLogger) Infof(msg string, args ...any) {
	m.infoCalls = append(m.infoCalls, fmt.Sprintf(msg, args...))
}

func (m *mockLogger) Warnf(msg string, args ...any) {
	m.warnCalls = append(m.warnCalls, fmt.Sprintf(msg, args...))
}

func (m *mockLogger) Errorf(msg string, args ...any) {
	m.errorCalls = append(m.errorCalls, fmt.Sprintf(msg, args...))
}

func TestGlogLoggerDoesNotPanic(t *testing.T) {
	flag.Set("logtostderr", "true")
	flag.Set("v", "2")

	var logger Logger = &GlogLogger{depth: 1}

	assert.NotPanics(t, func() {
		logger.Debugf("debug message with args: %s, %d", "test", 123)
		logger.Infof("info message with args: %s, %d", "test", 456)
		logger.Warnf("warning message with args: %s, %d", "test", 789)
		logger.Errorf("error message with args: %s, %d", "test", 0)
	})
}

func TestPrefixLogger(t *testing.T) {
	base := &mockLogger{}
	logger := NewPrefixLoggerWith("[Test]:", base)

	logger.Debugf("debug %d", 1)
	logger.Infof("info %s", "two")
	logger.Warnf("warn")
	logger.Errorf("error %v", fmt.Errorf("boom"))

	assert.Equal(t, []string{"[Test]: debug 1"}, base.debugCalls)
	assert.Equal(t, []string{"[Test]: info two"}, base.infoCalls)
	assert.Equal(t, []string{"[Test]: warn"}, base.warnCalls)
	assert.Equal(t, []string{"[Test]: error boom"}, base.errorCalls)
}

func TestPackageLevelFunctionsDelegate(t *testing.T) {
	original := logger
	defer func() { logger = original }()

	mock := &mockLogger{}
	logger = mock

	Debugf("a %d", 1)
	Infof("b %d", 2)
	Warnf("c %d", 3)
	Errorf("d %d", 4)

	assert.Equal(t, []string{"a 1"}, mock.debugCalls)
	assert.Equal(t, []string{"b 2"}, mock.infoCalls)
	assert.Equal(t, []string{"c 3"}, mock.warnCalls)
	assert.Equal(t, []string{"d 4"}, mock.errorCalls)
}
