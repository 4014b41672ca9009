package pubsub

import shared "github.com/bucketlist/server/pkg"

// CloudEvent sources, one per emitting component.
const (
	SourceBucketListAPI = "/bucketlist/api"
	SourceCLI           = "/bucketlist/cli"
)

// TopicFor maps an event type to the topic it is published on.
func TopicFor(eventType string) string {
	switch eventType {
	case shared.EventTypeCompletionChanged:
		return shared.TopicCompletionChanged
	case shared.EventTypeCatalogSeedRequested:
		return shared.TopicCatalogSeed
	default:
		return ""
	}
}
