package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDB struct {
	count    int
	lastSQL  string
	lastArgs []any
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	panic("not implemented")
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	s.lastSQL = sql
	s.lastArgs = args
	return stubRow{count: s.count}
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	panic("not implemented")
}

func (s *stubDB) Begin(ctx context.Context) (Tx, error) {
	panic("not implemented")
}

func (s *stubDB) Close() {}

type stubRow struct {
	count int
}

func (r stubRow) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.count
	return nil
}

func TestNextCode(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantQueue string
	}{
		{name: "first order of the day", count: 0, wantQueue: "001"},
		{name: "mid-day", count: 41, wantQueue: "042"},
		{name: "three digit rollover", count: 999, wantQueue: "1000"},
	}

	datePart := time.Now().Format("20060102")

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db := &stubDB{count: testCase.count}
			repo := NewOrderRepository(db)

			code, queueNumber, err := repo.NextCode(context.Background())

			require.NoError(t, err)
			assert.Equal(t, testCase.wantQueue, queueNumber)
			assert.Equal(t, fmt.Sprintf("ORD-%s-%s", datePart, testCase.wantQueue), code)

			// Allocation counts only today's codes
			require.Len(t, db.lastArgs, 1)
			assert.Equal(t, fmt.Sprintf("ORD-%s-%%", datePart), db.lastArgs[0])
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}

	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("failed to insert order: %w", pgErr)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}
