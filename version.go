package devlog

import _ "embed"

// Version is the release of devlog, read from the VERSION file.
//
//go:embed VERSION
var Version string
