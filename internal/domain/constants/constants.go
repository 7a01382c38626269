// Package constants defines shared domain-level constant values.
package constants

// Pub/Sub provider types for the order-event bridge.
const (
	// PubSubProviderLocal posts events to a local HTTP endpoint.
	PubSubProviderLocal = "local"

	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)
