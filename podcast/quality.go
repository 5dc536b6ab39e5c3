package podcast

const markerPrefix = "//open.live.bbc.co.uk/mediaselector/6/redir/version/2.0/mediaset/"

// Quality selects which download link variant is scraped.
type Quality int

const (
	Standard Quality = iota
	High
)

// ParseQuality maps the persisted high_quality flag.
func ParseQuality(high bool) Quality {
	if high {
		return High
	}
	return Standard
}

// Marker returns the URL path fragment identifying links of this quality.
func (q Quality) Marker() string {
	if q == High {
		return markerPrefix + "audio-nondrm-download/"
	}
	return markerPrefix + "audio-nondrm-download-low/"
}

// High reports whether q is the high quality variant.
func (q Quality) High() bool {
	return q == High
}

func (q Quality) String() string {
	if q == High {
		return "high"
	}
	return "standard"
}
