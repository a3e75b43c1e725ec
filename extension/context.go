// context.go defines the Context interface for extension access to glossd
// internals.
//
// Extensions receive Context during Init(), not at construction: they
// register before any database is open, and the root command opens the
// glossary only for commands that need it.

package extension

import (
	"database/sql"

	"github.com/jpl-au/glossd/internal/config"
	"github.com/jpl-au/glossd/internal/service"
)

// Context provides extensions controlled access to glossd internals.
type Context interface {
	// Service returns the glossary service. It is nil inside MCP tool
	// handlers while no glossary has been initialised.
	Service() service.Service

	// DB exposes the database for extensions needing their own tables.
	// Extensions should create their own tables, not modify core tables.
	DB() *sql.DB

	// Config returns the loaded user configuration.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{
		svc: svc,
		db:  db,
		cfg: cfg,
	}
}

func (c *extContext) Service() service.Service {
	return c.svc
}

func (c *extContext) DB() *sql.DB {
	return c.db
}

func (c *extContext) Config() *config.Config {
	return c.cfg
}
