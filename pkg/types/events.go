package types

// CompletionChangedEvent is published after a completion write succeeds.
type CompletionChangedEvent struct {
	UserID     string `json:"userId"`
	ActivityID string `json:"activityId"`
	Completed  bool   `json:"completed"`
	Timestamp  string `json:"timestamp"` // ISO 8601
}

// CatalogSeedRequest triggers the catalog seeder. All fields are optional.
type CatalogSeedRequest struct {
	// Requester is logged only.
	Requester string `json:"requester,omitempty"`
}
