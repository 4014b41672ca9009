package shared

const (
	ProjectID = "bucketlist-project" // Can be overridden by GOOGLE_CLOUD_PROJECT
	AppID     = "default-app-id"     // Can be overridden by APP_ID

	TopicCompletionChanged = "topic-completion-changed"
	TopicCatalogSeed       = "topic-catalog-seed"

	EventTypeCompletionChanged    = "com.bucketlist.completion.changed"
	EventTypeCatalogSeedRequested = "com.bucketlist.catalog.seed.requested"

	CollectionArtifacts           = "artifacts"
	CollectionActivities          = "bucketListActivities"
	CollectionCompletedActivities = "completedActivities"
)
