package db

import "context"

// DBType selects the backend for the user and company-profile stores.
// Billing data is always Postgres.
type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is the lifecycle shared by both connectors.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
