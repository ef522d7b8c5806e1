package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/talkincode/foodhub/config"
	"github.com/talkincode/foodhub/internal/domain"
	"github.com/talkincode/foodhub/internal/mailer"
	"github.com/talkincode/foodhub/internal/repository"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the per-collection repositories
type StoreProvider interface {
	Menus() repository.Repository[domain.MenuItem]
	Contacts() repository.Repository[domain.ContactMessage]
	Orders() repository.Repository[domain.Order]
}

// MailerProvider provides the outbound mail gateway
type MailerProvider interface {
	Mailer() mailer.Sender
}

// MetricsProvider exposes application gauges to the metrics endpoint
type MetricsProvider interface {
	Collectors() []prometheus.Collector
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StoreProvider
	MailerProvider
	MetricsProvider

	// SeedMenu inserts the fixed menu list in one batch and returns how many
	// records were written. Calling it twice writes the list twice.
	SeedMenu(ctx context.Context) (int, error)
	// Ping reports whether the document store answers
	Ping(ctx context.Context) error
}
