// Package client bootstraps on-device persistence: it opens the SQLite
// database, applies the embedded goose migrations (InitDatabase,
// RunMigrations) and exposes the repositories built on it (NewRepositories).
package client
