// Package constants holds shared environment and provider identifiers.
package constants

const (
	// EnvDevelop is the local development environment name.
	EnvDevelop = "develop"
	// EnvProduction is the production environment name.
	EnvProduction = "production"

	// PubSubProviderLocal selects the local HTTP publisher for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// AdminTopic is the FCM topic every admin device subscribes to.
	AdminTopic = "admins"
	// CommuneTopicPrefix prefixes per-commune FCM topics ("commune-<id>").
	CommuneTopicPrefix = "commune-"
)
