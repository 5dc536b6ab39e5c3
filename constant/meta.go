// Package constant holds the identifiers baked into the binary.
package constant

import _ "embed"

const (
	// App names the binary, the config file, the env prefix and the app directories.
	App = "podfetch"

	Version = "0.3.0"

	// UserAgent is sent with every request to landing pages and media hosts.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is the banner printed above the root command's help.
//
//go:embed ascii.txt
var AsciiArtLogo string
