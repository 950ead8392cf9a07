package logger

// prefixLogger prepends a fixed prefix to every message before delegating.
type prefixLogger struct {
	prefix string
	base   Logger
}

// NewPrefixLogger returns a glog-backed Logger whose messages all start with prefix.
func NewPrefixLogger(prefix string) Logger {
	return NewPrefixLoggerWith(prefix, &GlogLogger{depth: 2})
}

// NewPrefixLoggerWith wraps base so that every message starts with prefix.
func NewPrefixLoggerWith(prefix string, base Logger) Logger {
	return &prefixLogger{
		prefix: prefix,
		base:   base,
	}
}

func (l *prefixLogger) Debugf(msg string, args ...any) {
	l.base.Debugf(l.prefix+" "+msg, args...)
}

func (l *prefixLogger) Infof(msg string, args ...any) {
	l.base.Infof(l.prefix+" "+msg, args...)
}

func (l *prefixLogger) Warnf(msg string, args ...any) {
	l.base.Warnf(l.prefix+" "+msg, args...)
}

func (l *prefixLogger) Errorf(msg string, args ...any) {
	l.base.Errorf(l.prefix+" "+msg, args...)
}
