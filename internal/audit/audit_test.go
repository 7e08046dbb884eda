package audit

// #region imports
import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// #endregion imports

// #region fixtures

func newTestLog(t *testing.T) *Log {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	require.NoError(t, err)

	l, err := NewLog(db)
	require.NoError(t, err)
	return l
}

// #endregion fixtures

// #region append-tests

func TestAppendAndRecent(t *testing.T) {
	l := newTestLog(t)

	ts, err := l.Append("CUST_001", "cancel_financial_hardship")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())

	_, err = l.Append("CUST_002", "cancel_product_issues")
	require.NoError(t, err)

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "CUST_002", entries[0].CustomerID)
	assert.Equal(t, "cancel_product_issues", entries[0].Action)
	assert.Equal(t, "CUST_001", entries[1].CustomerID)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestCountFor(t *testing.T) {
	l := newTestLog(t)

	_, err := l.Append("CUST_001", "cancel_financial_hardship")
	require.NoError(t, err)
	_, err = l.Append("CUST_001", "cancel_service_value")
	require.NoError(t, err)

	n, err := l.CountFor("CUST_001")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = l.CountFor("CUST_999")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConcurrentAppend(t *testing.T) {
	l := newTestLog(t)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Append("CUST_001", "cancel_financial_hardship")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := l.CountFor("CUST_001")
	require.NoError(t, err)
	assert.Equal(t, writers, n)
}

// #endregion append-tests
