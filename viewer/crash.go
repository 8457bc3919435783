package viewer

import (
	"log/slog"
	"runtime/debug"
)

// guard restores the terminal before a panic leaves Run, so the stack trace is readable
// Must be deferred directly
func (v *Viewer) guard() {
	r := recover()
	if r == nil {
		return
	}

	v.screen.Fini()
	v.logger.Error("viewer crashed",
		slog.Any("panic", r),
		slog.String("stack", string(debug.Stack())))
	panic(r)
}
