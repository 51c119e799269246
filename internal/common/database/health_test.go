package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-workers/internal/common/config"
)

func TestCheckAll_Healthy(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	pg := &PostgresClient{DB: db}
	rc := &RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer rc.Close()

	failures := CheckAll(context.Background(), time.Second, pg, rc)
	assert.Empty(t, failures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAll_ReportsFailuresByName(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	rc := &RedisClient{Client: redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})}
	defer rc.Close()

	failures := CheckAll(context.Background(), 500*time.Millisecond, &PostgresClient{DB: db}, rc)
	require.Len(t, failures, 2)
	assert.Contains(t, failures["postgres"], "connection refused")
	assert.Contains(t, failures["redis"], "redis ping failed")
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestNewElasticsearch(t *testing.T) {
	c, err := NewElasticsearch(config.ElasticsearchConfig{Addresses: []string{"http://localhost:9200"}})
	require.NoError(t, err)
	assert.Equal(t, "elasticsearch", c.Name())
}
