package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/storage/db"
)

// recordingDB captures the statement and arguments of every Query and answers
// with scripted rows.
type recordingDB struct {
	db.DB

	rows     []productRow
	queryErr error
	rowsErr  error

	sql  string
	args []any
}

func (r *recordingDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.sql = sql
	r.args = args
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return &scriptedRows{rows: r.rows, err: r.rowsErr}, nil
}

type scriptedRows struct {
	rows   []productRow
	err    error
	pos    int
	closed bool
}

func (s *scriptedRows) Close() { s.closed = true }

func (s *scriptedRows) Err() error { return s.err }

func (s *scriptedRows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(s.rows)))
}

func (s *scriptedRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (s *scriptedRows) Next() bool {
	if s.closed || s.err != nil || s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *scriptedRows) Scan(dest ...any) error {
	values, err := s.Values()
	if err != nil {
		return err
	}
	if len(dest) != len(values) {
		return fmt.Errorf("scan: got %d targets for %d columns", len(dest), len(values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(values[i]))
	}
	return nil
}

func (s *scriptedRows) Values() ([]any, error) {
	row := s.rows[s.pos-1]
	return []any{row.ID, row.Name, row.Price, row.Description, row.CreatedAt}, nil
}

func (s *scriptedRows) RawValues() [][]byte { return make([][]byte, 5) }

func (s *scriptedRows) Conn() *pgx.Conn { return nil }
