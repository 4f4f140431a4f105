package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func setupSpanRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value
	}
	return out
}

func TestRegisterDBTracing(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBTracingConfig
	}{
		{"disabled", DBTracingConfig{}},
		{"enabled", DBTracingConfig{Enabled: true, SlowQueryThresh: 200 * time.Millisecond}},
		{"enabled with full sql", DBTracingConfig{Enabled: true, LogFullSQL: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)

			require.NoError(t, RegisterDBTracing(db, tt.cfg, zap.NewNop()))

			// queries keep working with the callbacks installed
			require.NoError(t, db.Create(&tracedRow{Name: "a"}).Error)
			var count int64
			require.NoError(t, db.Model(&tracedRow{}).Count(&count).Error)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestSlowQueryCallback_MarksSlowQueries(t *testing.T) {
	db := setupTestDB(t)
	tp, recorder := setupSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "insert")
	tx := db.WithContext(ctx).Create(&tracedRow{Name: "slow"})
	require.NoError(t, tx.Error)

	tx.InstanceSet(startTimeKey, time.Now().Add(-time.Second))
	slowQueryCallback(100 * time.Millisecond)(tx)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, int64(1), attrs["db.rows_affected"].AsInt64())
	assert.True(t, attrs["db.slow_query"].AsBool())
	assert.GreaterOrEqual(t, attrs["db.query_duration_ms"].AsInt64(), int64(1000))
}

func TestSlowQueryCallback_FastQuery(t *testing.T) {
	db := setupTestDB(t)
	tp, recorder := setupSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "insert")
	tx := db.WithContext(ctx).Create(&tracedRow{Name: "fast"})
	require.NoError(t, tx.Error)

	tx.InstanceSet(startTimeKey, time.Now())
	slowQueryCallback(time.Hour)(tx)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	_, slow := attrMap(spans[0].Attributes())["db.slow_query"]
	assert.False(t, slow)
}

func TestSlowQueryCallback_RecordNotFoundIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	tp, recorder := setupSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "lookup")
	var row tracedRow
	tx := db.WithContext(ctx).First(&row, 999)
	require.ErrorIs(t, tx.Error, gorm.ErrRecordNotFound)

	slowQueryCallback(time.Hour)(tx)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestSlowQueryCallback_NonRecordingSpan(t *testing.T) {
	db := setupTestDB(t)
	tx := db.WithContext(context.Background()).Create(&tracedRow{Name: "untraced"})
	require.NoError(t, tx.Error)

	assert.NotPanics(t, func() { slowQueryCallback(time.Millisecond)(tx) })
}
