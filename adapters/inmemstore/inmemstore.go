package inmemstore

import (
	"sort"
	"sync"
	"time"

	"github.com/storefront/backend/pkg/pagination"
)

// DB is a process-local stand-in for the postgres database. Each store
// keeps its own table inside it.
type DB struct {
	mu     sync.RWMutex
	tables map[string]map[string]interface{}
}

func NewConnection() (*DB, error) {
	return &DB{tables: make(map[string]map[string]interface{})}, nil
}

func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.tables = make(map[string]map[string]interface{})

	return nil
}

// lookup returns the table without creating it. Reads hold only the read
// lock, and a nil map reads as empty.
func (db *DB) lookup(name string) map[string]interface{} {
	return db.tables[name]
}

// table returns the table, creating it on first write. Callers hold the
// write lock.
func (db *DB) table(name string) map[string]interface{} {
	t, ok := db.tables[name]
	if !ok {
		t = make(map[string]interface{})
		db.tables[name] = t
	}

	return t
}

var now = func() time.Time { return time.Now().UTC() }

// page returns the rows of table sorted by key, starting after the cursor
// token, and sets the next token when more rows remain.
func (db *DB) page(name string, cursor *pagination.Cursor) ([]interface{}, error) {
	after, err := pagination.DecodeToken[pagination.KeysetCursor](cursor.Token)
	if err != nil {
		return nil, err
	}

	t := db.lookup(name)
	keys := make([]string, 0, len(t))
	for k := range t {
		if k > after.After {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if len(keys) > cursor.Limit {
		keys = keys[:cursor.Limit]
		cursor.SetNextToken(pagination.EncodeToken(pagination.KeysetCursor{After: keys[len(keys)-1]}))
	}

	rows := make([]interface{}, len(keys))
	for i, k := range keys {
		rows[i] = t[k]
	}

	return rows, nil
}
