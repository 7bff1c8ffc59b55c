package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	posted bool
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*bool) = r.posted
	return nil
}

type fakeQuerier struct {
	row   fakeRow
	query string
	args  []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.query = sql
	q.args = args
	return q.row
}

func TestLockUnpostedEntry(t *testing.T) {
	tests := []struct {
		name    string
		row     fakeRow
		wantErr error
	}{
		{name: "unposted entry is locked", row: fakeRow{posted: false}},
		{name: "entry posted concurrently is refused", row: fakeRow{posted: true}, wantErr: apperrors.ErrState},
		{name: "missing entry", row: fakeRow{err: pgx.ErrNoRows}, wantErr: apperrors.ErrNotFound},
		{name: "driver failure", row: fakeRow{err: errors.New("connection reset")}, wantErr: apperrors.ErrPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQuerier{row: tt.row}

			err := lockUnpostedEntry(context.Background(), q, "entry-1", "delete")

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, q.query, "FOR UPDATE")
			assert.Equal(t, []any{"entry-1"}, q.args)
		})
	}
}

func TestLockUnpostedEntry_StateErrorNamesAction(t *testing.T) {
	err := lockUnpostedEntry(context.Background(), &fakeQuerier{row: fakeRow{posted: true}}, "entry-1", "edit")

	var stateErr *apperrors.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Contains(t, err.Error(), "POSTED")
	assert.Contains(t, err.Error(), "edit")
}
