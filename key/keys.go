// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Subscription Stores - these keys locate the catalog and watermark files consumed at startup.
const (
	CatalogPath = "catalog.path"
	StatePath   = "state.path"
)

// Discovery - these keys tune how landing pages are fetched and reconciled.
const (
	DiscoverWorkers        = "discover.workers"
	DiscoverFailFast       = "discover.fail_fast"
	DiscoverPreferEmbedded = "discover.prefer_embedded_links"
	DiscoverCacheTTL       = "discover.cache_ttl"
)

// Downloads - these keys govern how selected episodes are written to disk.
const (
	DownloadTag            = "download.tag"
	DownloadRateLimit      = "download.rate_limit"
	DownloadCleanupPartial = "download.cleanup_partial"
)

// Networking - these keys configure the shared HTTP client.
const (
	NetworkTimeout        = "network.timeout"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// History Tracking - these keys configure the persistence of completed downloads.
const (
	HistorySave = "history.save"
)

// Terminal User Interface (TUI) - these keys define the selection screen's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
