// Package directory is the customer record store: SQLite-backed, seeded from
// the customers CSV, keyed by case-insensitive email.
package directory

// #region imports
import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// #endregion imports

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id    TEXT PRIMARY KEY,
	email          TEXT NOT NULL UNIQUE COLLATE NOCASE,
	name           TEXT NOT NULL,
	tier           TEXT NOT NULL,
	plan_type      TEXT NOT NULL,
	monthly_charge REAL NOT NULL,
	tenure_months  INTEGER NOT NULL
);
`

// #endregion schema

// #region types

// Customer is one customer profile record.
type Customer struct {
	ID            string
	Email         string
	Name          string
	Tier          string
	PlanType      string
	MonthlyCharge float64
	TenureMonths  int
}

// ErrCustomerNotFound is returned by Lookup when no record matches the email.
// Callers continue without a profile; tier defaults to "regular".
var ErrCustomerNotFound = errors.New("customer not found")

// #endregion types

// #region store

// Store manages customer records in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. audit).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region import-csv

// ImportCSV upserts customer rows from a CSV file with a header row of
// customer_id,email,name,tier,plan_type,monthly_charge,tenure_months.
// Returns the number of rows imported.
func (s *Store) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open customers csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, required := range []string{"customer_id", "email", "name", "tier"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("customers csv missing column %q", required)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO customers (customer_id, email, name, tier, plan_type, monthly_charge, tenure_months)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(customer_id) DO UPDATE SET
		   email=excluded.email, name=excluded.name, tier=excluded.tier,
		   plan_type=excluded.plan_type, monthly_charge=excluded.monthly_charge,
		   tenure_months=excluded.tenure_months`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv row: %w", err)
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		charge, _ := strconv.ParseFloat(get("monthly_charge"), 64)
		tenure, _ := strconv.Atoi(get("tenure_months"))
		if _, err := stmt.Exec(get("customer_id"), get("email"), get("name"), get("tier"),
			get("plan_type"), charge, tenure); err != nil {
			return 0, fmt.Errorf("upsert customer %s: %w", get("customer_id"), err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return count, nil
}

// #endregion import-csv

// #region lookup

// Lookup finds a customer by case-insensitive email match.
func (s *Store) Lookup(email string) (Customer, error) {
	var c Customer
	err := s.db.QueryRow(
		`SELECT customer_id, email, name, tier, plan_type, monthly_charge, tenure_months
		 FROM customers WHERE email = ? COLLATE NOCASE`,
		strings.TrimSpace(email),
	).Scan(&c.ID, &c.Email, &c.Name, &c.Tier, &c.PlanType, &c.MonthlyCharge, &c.TenureMonths)
	if err == sql.ErrNoRows {
		return Customer{}, ErrCustomerNotFound
	}
	if err != nil {
		return Customer{}, fmt.Errorf("lookup customer: %w", err)
	}
	return c, nil
}

// #endregion lookup
