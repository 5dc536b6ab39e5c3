package config

import "github.com/podfetch/podfetch/key"

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogPath, "", "Path to the subscription catalog (header row, then \"name, url\" rows).\nEmpty means podcasts_url.csv in the config directory")
	register(key.StatePath, "", "Path to the watermark file (last_download, path, high_quality).\nEmpty means configure.txt in the config directory")
	register(key.DiscoverWorkers, 4, "Number of series whose landing pages are fetched concurrently.\nSet to 1 for strictly sequential discovery")
	register(key.DiscoverFailFast, false, "Abort the whole run when one series fails to load")
	register(key.DiscoverPreferEmbedded, false, "Use download links embedded in the structured episode data when every episode has one,\ninstead of pairing scraped links by position")
	register(key.DiscoverCacheTTL, 15, "Minutes a discovered episode list is reused before the landing page is fetched again.\n0 disables the cache")
	register(key.DownloadTag, true, "Write an ID3v2 tag (title, series, year, description) to downloaded files without one")
	register(key.DownloadRateLimit, 0, "Download bandwidth limit in KiB/s. 0 means unlimited")
	register(key.DownloadCleanupPartial, true, "Remove a partially written file when its download fails")
	register(key.NetworkTimeout, 60, "HTTP timeout in seconds for landing pages and media files")
	register(key.NetworkTLSFingerprint, false, "Use a browser TLS fingerprint for HTTPS requests")
	register(key.HistorySave, true, "Record completed downloads in the history file")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUIShowURLs, false, "Show source URLs under list items")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}
