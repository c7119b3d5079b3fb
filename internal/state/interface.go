package state

import (
	"io"

	"github.com/ShayCichocki/tasktimer/internal/tasks"
)

// Migrator handles database schema migrations.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// Backend is a database that can be closed and migrated.
type Backend interface {
	io.Closer
	Migrator
}

// Compile-time verification of the implementations.
var (
	_ Backend          = (*DB)(nil)
	_ tasks.Collection = (*TaskCollection)(nil)
)
