// Package logger is rsatoy's process-wide logging facade: a single
// swappable sirius/log.Logger that defaults to discarding everything,
// so library code never forces output on a caller that hasn't asked
// for it. cmd/rsatoy calls SetLogger once, from a real logger built
// out of the CLI's --verbose flag, inside its root command's
// PersistentPreRunE — after every package-level var in the binary has
// already been initialized. Named loggers are therefore lazy: they
// resolve root on every call instead of capturing it at init time, so
// a package-level `var log = logger.Named(...)` still picks up
// SetLogger's replacement.
package logger

import "github.com/getamis/sirius/log"

var root = log.Discard()

// Logger returns the process-wide logger.
func Logger() log.Logger {
	return root
}

// SetLogger replaces the process-wide logger, typically once at
// startup.
func SetLogger(l log.Logger) {
	root = l
}

// Named returns a logger scoped to component. The returned value
// defers to the process-wide logger on every call rather than
// capturing it once, so callers are free to store the result in a
// package-level variable at init time, before main has had a chance
// to call SetLogger.
func Named(component string) log.Logger {
	return &namedLogger{component: component}
}

// namedLogger re-resolves root.New("component", ...) on every method
// call instead of once at construction, so a package-level
// `var log = logger.Named(...)` (evaluated at init, before
// cmd/rsatoy's PersistentPreRunE runs) still observes a later
// SetLogger call.
type namedLogger struct {
	component string
}

func (n *namedLogger) resolve() log.Logger {
	return root.New("component", n.component)
}

func (n *namedLogger) New(ctx ...interface{}) log.Logger {
	return n.resolve().New(ctx...)
}

func (n *namedLogger) Trace(msg string, ctx ...interface{}) {
	n.resolve().Trace(msg, ctx...)
}

func (n *namedLogger) Debug(msg string, ctx ...interface{}) {
	n.resolve().Debug(msg, ctx...)
}

func (n *namedLogger) Info(msg string, ctx ...interface{}) {
	n.resolve().Info(msg, ctx...)
}

func (n *namedLogger) Warn(msg string, ctx ...interface{}) {
	n.resolve().Warn(msg, ctx...)
}

func (n *namedLogger) Error(msg string, ctx ...interface{}) {
	n.resolve().Error(msg, ctx...)
}

func (n *namedLogger) Crit(msg string, ctx ...interface{}) {
	n.resolve().Crit(msg, ctx...)
}

func (n *namedLogger) SetHandler(h log.Handler) {
	n.resolve().SetHandler(h)
}

func (n *namedLogger) GetHandler() log.Handler {
	return n.resolve().GetHandler()
}

func (n *namedLogger) SetSkipLevel(skip int) {
	n.resolve().SetSkipLevel(skip)
}
