package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rushi-mungse/product-microservice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestDialector(t *testing.T) {
	cfg := &config.Config{DBDriver: "postgres", DBHost: "db", DBPort: 5432, DBUsername: "u", DBName: "catalog"}
	assert.Equal(t, "postgres", dialector(cfg).Name())

	cfg.DBDriver = "mysql"
	cfg.DBPort = 3306
	assert.Equal(t, "mysql", dialector(cfg).Name())
}

func TestClose(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: newGormLogger(zap.NewNop())})
	require.NoError(t, err)

	mock.ExpectClose()
	require.NoError(t, Close(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
