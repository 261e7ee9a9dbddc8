// Package repository holds the MySQL data access layer.  Driver errors that
// callers need to react to are translated into the sentinel values below;
// anything else is returned wrapped and treated as a storage failure.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a point lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key
// (MySQL error 1062).
var ErrDuplicate = errors.New("duplicate entry")

// ErrInvalidReference is returned when an insert references a parent row
// that does not exist (MySQL error 1452).
var ErrInvalidReference = errors.New("invalid reference")

const (
	mysqlDuplicateEntry    = 1062
	mysqlNoReferencedRow   = 1452
	mysqlNoReferencedRowV1 = 1216
)

// classify maps driver errors onto the sentinels above.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlNoReferencedRow, mysqlNoReferencedRowV1:
			return ErrInvalidReference
		}
	}
	return err
}
