// Package loom is a minimal object-relational mapping layer. Given a
// declarative model definition it synthesizes dialect-correct schema,
// validates entities against the model's constraints, performs
// parameterized CRUD, and runs batched work transactionally, staying
// agnostic to the underlying SQL dialect.
//
// # Usage
//
//	drv, err := loomsql.Open(dialect.SQLite, "file:app.db")
//	d, err := dialect.New(dialect.SQLite)
//	client := loom.NewClient(loom.Driver(drv), loom.Dialect(d))
//
//	user, err := client.Register(ctx, schema.New("User",
//	    field.Int("id").PrimaryKey().AutoIncrement(),
//	    field.String("name").Required().Unique(),
//	    field.String("email").Required(),
//	))
//
//	id, err := client.Insert(ctx, user, loom.Entity{
//	    "name":  "Alice",
//	    "email": "alice@example.com",
//	})
//
// All operations are synchronous and block the calling goroutine until
// the store responds. Values are always bound as parameters; identifiers
// (table and column names) are taken verbatim from model metadata and
// caller input and are not validated — supply trusted identifiers only.
package loom

import (
	"context"

	"github.com/syssam/loom/dialect"
	"github.com/syssam/loom/schema"
)

// An Entity is the value surface the engine reads and validates: column
// name to value. A column absent from the map is treated as null.
type Entity map[string]any

// Client is the engine facade: schema synthesis, validation, CRUD and
// transactions over one driver and one dialect.
type Client struct {
	driver  dialect.Driver
	dialect dialect.Dialect
	models  *schema.Registry
}

// An Option configures a Client.
type Option func(*Client)

// Driver configures the client's store driver.
func Driver(d dialect.Driver) Option {
	return func(c *Client) { c.driver = d }
}

// Dialect configures the client's SQL dialect.
func Dialect(d dialect.Dialect) Option {
	return func(c *Client) { c.dialect = d }
}

// Registry configures the client's model registry. Clients sharing a
// registry share its cached descriptors.
func Registry(r *schema.Registry) Option {
	return func(c *Client) { c.models = r }
}

// NewClient creates a new Client configured with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.models == nil {
		c.models = schema.NewRegistry()
	}
	return c
}

// Models returns the client's model registry.
func (c *Client) Models() *schema.Registry {
	return c.models
}

// Register resolves the definition into a cached model descriptor and
// synthesizes its schema against the store. The generated DDL is
// idempotent, so re-registering an existing model is safe; it is
// executed exactly once per call.
func (c *Client) Register(ctx context.Context, def *schema.Definition) (*schema.Model, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	m, err := c.models.Register(def)
	if err != nil {
		return nil, err
	}
	if err := c.CreateTable(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// init reports whether the client is ready to touch the store.
func (c *Client) init() error {
	if c.driver == nil || c.dialect == nil {
		return ErrNotInitialized
	}
	return nil
}

// connPinner is implemented by drivers that can pin a single connection
// from their pool for statement pairs relying on connection-scoped state.
type connPinner interface {
	PinnedConn(ctx context.Context) (dialect.ExecQuerier, func() error, error)
}

// pinConn returns a pinned connection when the driver supports it, and
// the driver itself otherwise. The release function may be nil.
func (c *Client) pinConn(ctx context.Context) (dialect.ExecQuerier, func() error, error) {
	if p, ok := c.driver.(connPinner); ok {
		return p.PinnedConn(ctx)
	}
	return c.driver, nil, nil
}
