package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// MigrationsDialect is the goose dialect of the embedded migrations
	MigrationsDialect = "postgres"

	// MigrationsDir is the directory inside the embedded migrations FS
	MigrationsDir = "."
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToSetDialect       = "failed to set goose dialect"
	ErrMsgFailedToRunMigrations    = "failed to run migrations"
	ErrMsgFailedToReadMigrationVer = "failed to read migration version"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgRunningMigrations               = "Running database migrations"
	LogMsgMigrationsCompleted             = "Database migrations completed"
)
