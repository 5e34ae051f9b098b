// Package database defines driver-agnostic configuration shared by the
// relational, document, key-value, and vector sub-packages. Each concrete
// adapter (pkg/database/adapters/*, pkg/database/sql/adapters/*,
// pkg/database/document/adapters/*) validates cfg.Driver against one of
// the constants below before connecting.
package database

import (
	"context"

	"gorm.io/gorm"
)

// Driver identifies a concrete database backend.
type Driver string

const (
	DriverPostgres  Driver = "postgres"
	DriverMySQL     Driver = "mysql"
	DriverSQLite    Driver = "sqlite"
	DriverSQLServer Driver = "sqlserver"
	DriverMongoDB   Driver = "mongodb"
	DriverDynamoDB  Driver = "dynamodb"
	DriverCassandra Driver = "cassandra"
	DriverPinecone  Driver = "pinecone"
)

// Config holds connection parameters common to every adapter. Fields that
// don't apply to a given driver are simply left zero.
type Config struct {
	Driver   Driver
	Host     string
	Port     int
	Database string
	User     string
	Password string

	MaxOpenConns int
	MaxIdleConns int

	UseTLS             bool
	InsecureSkipVerify bool
	CAPath             string
	CertPath           string
	KeyPath            string

	Region string
}

// DB is the umbrella interface the instrumented manager wraps; individual
// services normally depend on the narrower document.Interface directly
// rather than on DB, which exists to support sharded multi-model managers.
type DB interface {
	Get(ctx context.Context) *gorm.DB
	GetShard(ctx context.Context, key string) (*gorm.DB, error)
	GetDocument(ctx context.Context) interface{}
	GetKV(ctx context.Context) interface{}
	GetVector(ctx context.Context) interface{}
	Close() error
}

// HealthChecker is implemented by adapters that can report liveness without
// performing a real operation.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}
