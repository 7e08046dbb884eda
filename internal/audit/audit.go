// Package audit is the append-only compliance log for customer-affecting
// actions. Writes are durable appends; a failed write is reported to the
// caller but never blocks the already-composed customer response.
package audit

// #region imports
import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// #endregion imports

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_id TEXT NOT NULL,
	action      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region types

// Entry is one audit log row.
type Entry struct {
	ID         int64
	CustomerID string
	Action     string
	CreatedAt  time.Time
}

// WriteError marks a failed audit append. The user-visible action is not
// rolled back; the caller reports the failure instead.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("audit write: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsWriteError reports whether err is (or wraps) a WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// #endregion types

// #region log

// Log appends action records to the audit_log table. Safe for concurrent
// append from independent conversations.
type Log struct {
	db *sql.DB
}

// NewLog runs the audit schema migration on the shared database.
func NewLog(db *sql.DB) (*Log, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate audit log: %w", err)
	}
	return &Log{db: db}, nil
}

// Append records an action against a customer and returns the entry
// timestamp.
func (l *Log) Append(customerID, action string) (time.Time, error) {
	now := time.Now().UTC()
	_, err := l.db.Exec(
		`INSERT INTO audit_log (customer_id, action, created_at) VALUES (?, ?, ?)`,
		customerID, action, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return time.Time{}, &WriteError{Err: err}
	}
	return now, nil
}

// Recent returns the n most recent entries, newest first.
func (l *Log) Recent(n int) ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT id, customer_id, action, created_at FROM audit_log ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Action, &ts); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountFor returns the number of entries recorded for one customer.
func (l *Log) CountFor(customerID string) (int, error) {
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM audit_log WHERE customer_id = ?`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count audit rows: %w", err)
	}
	return n, nil
}

// #endregion log
