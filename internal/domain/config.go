package domain

import "time"

// FeedConfig carries everything the engine used to read from process-wide settings.
type FeedConfig struct {
	CollectionURI      string
	Verb               string
	Actor              string
	Instrument         string
	PageSize           int
	CheckLastModified  bool
	EventIDs           bool
	EventTTL           time.Duration
	ServiceBaseAddress string
}
