package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestFilterNormalize(t *testing.T) {
	f := Filter{Page: -1, Limit: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, defaultPageSize, f.Limit)

	f = Filter{Page: 3, Limit: 20}.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Limit)
}

func TestGormSinkList(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE action = \$1`).
		WithArgs("business_created").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE action = \$1 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "role", "action", "entity", "entity_id", "metadata", "created_at"}).
			AddRow(7, "3", "owner", "business_created", "business", 2, `{"name":"Beta"}`, now))

	logs, total, err := NewGormSink(db).List(context.Background(), Filter{Action: "business_created"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "owner", logs[0].Role)
	require.NotNil(t, logs[0].EntityID)
	assert.EqualValues(t, 2, *logs[0].EntityID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
