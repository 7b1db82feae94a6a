// Package dbtx lets gorm repositories join a transaction that a service
// opened on the underlying *sql.DB.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn returns a gorm handle bound to ctx. When tx is non-nil every statement
// issued through the handle runs on tx.
//
// gorm's default per-write transaction is skipped automatically in that case:
// an *sql.Tx cannot begin a nested transaction and gorm falls back to the pool
// it was given.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		conn.Statement.ConnPool = tx
	}
	return conn
}
