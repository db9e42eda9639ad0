package service

import "context"

// Notifier pushes a message to everyone subscribed to a topic.
// The feed worker uses per-commune topics plus a city-wide admin topic.
type Notifier interface {
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}
