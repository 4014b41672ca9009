package types

import "time"

// PubSubMessage is the data of a google.cloud.pubsub.topic.v1.messagePublished
// CloudEvent, as delivered to the catalog seeder.
type PubSubMessage struct {
	Message struct {
		ID          string            `json:"messageId,omitempty"`
		PublishTime time.Time         `json:"publishTime,omitempty"`
		Data        []byte            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription,omitempty"`
}
