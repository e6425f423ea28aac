package entities

// Failure is the descriptor persisted alongside a *Failed state: the kind
// of error that stopped the transition, the human-facing context
// ("provisioner apply exited non-zero"), the underlying cause, and
// remediation guidance.
type Failure struct {
	Kind    string `json:"kind"`
	Context string `json:"context"`
	Source  string `json:"source"`
	Help    string `json:"help"`
}

// NewFailure builds a Failure descriptor from the context a handler was
// performing and the error it received. If err implements Helper its
// guidance is reused; otherwise Help falls back to the bare error text.
func NewFailure(kind, context string, err error) Failure {
	help := err.Error()
	if h, ok := err.(Helper); ok {
		help = h.Help()
	}
	return Failure{
		Kind:    kind,
		Context: context,
		Source:  err.Error(),
		Help:    help,
	}
}
