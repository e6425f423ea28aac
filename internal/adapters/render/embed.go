package render

import "embed"

// templatesFS bundles the read-only templates shipped inside the binary.
// Renderers write them into build/<env>/<tool>/ on every Render call,
// overwriting any files already there.
//
//go:embed templates
var templatesFS embed.FS
