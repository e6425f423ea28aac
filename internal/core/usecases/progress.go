package usecases

// withProgress returns p, or a no-op listener if p is nil. Every handler
// accepts an optional ProgressListener; this keeps call sites free of nil
// checks.
func withProgress(p ProgressListener) ProgressListener {
	if p == nil {
		return NoopProgressListener{}
	}
	return p
}
