package source

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Connector opens the source database. It is invoked once, on the first
// query issued by a Reader.
type Connector func(ctx context.Context) (*sql.DB, error)

// Reader issues read-only queries against a RackTables database.
type Reader struct {
	connect Connector
	builder *QueryBuilder

	mu sync.Mutex
	db *sql.DB

	log *zap.SugaredLogger
}

func New(connect Connector) *Reader {
	return &Reader{
		connect: connect,
		builder: NewBuilder(),
		log:     zap.S().Named("source"),
	}
}

// NewFromDB wraps an already opened database.
func NewFromDB(db *sql.DB) *Reader {
	r := New(func(context.Context) (*sql.DB, error) { return db, nil })
	r.db = db
	return r
}

func (r *Reader) conn(ctx context.Context) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}
	if r.connect == nil {
		return nil, NewErrNotConnected()
	}

	db, err := r.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to source database: %w", err)
	}
	r.log.Debug("connected to source database")
	r.db = db
	return db, nil
}

// Ping connects if needed and verifies the connection is alive.
func (r *Reader) Ping(ctx context.Context) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}
