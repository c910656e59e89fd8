package connect

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestGormLogger(buf *bytes.Buffer) gormlogger.Interface {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return newGormLogger(logger)
}

func query(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := newTestGormLogger(&buf)
	ctx := context.Background()

	l.Trace(ctx, time.Now(), query(`SELECT * FROM "events"`), nil)
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "component=gorm") {
		t.Errorf("expected a debug query line: %s", buf.String())
	}

	buf.Reset()
	l.Trace(ctx, time.Now(), query(`INSERT INTO "events"`), errors.New("duplicate key value"))
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "duplicate key value") {
		t.Errorf("expected the failed statement to be logged as an error: %s", buf.String())
	}

	buf.Reset()
	l.Trace(ctx, time.Now().Add(-time.Second), query(`SELECT pg_sleep(1)`), nil)
	if !strings.Contains(buf.String(), "Slow query") {
		t.Errorf("expected a slow query warning: %s", buf.String())
	}

	buf.Reset()
	l.Trace(ctx, time.Now(), query(`SELECT * FROM "events" WHERE "events"."id" = 9`), gorm.ErrRecordNotFound)
	if strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("a missing row is not a query failure: %s", buf.String())
	}
}

func TestGormLoggerLogMode(t *testing.T) {
	var buf bytes.Buffer
	l := newTestGormLogger(&buf).LogMode(gormlogger.Warn)
	ctx := context.Background()

	l.Trace(ctx, time.Now(), query(`SELECT 1`), nil)
	l.Info(ctx, "opened %d connections", 3)
	if buf.Len() != 0 {
		t.Errorf("expected nothing below warn: %s", buf.String())
	}

	l.Warn(ctx, "pool nearly exhausted: %d/%d", 9, 10)
	if !strings.Contains(buf.String(), "pool nearly exhausted: 9/10") {
		t.Errorf("warning was not logged: %s", buf.String())
	}

	buf.Reset()
	l.LogMode(gormlogger.Silent).Error(ctx, "lost connection")
	if buf.Len() != 0 {
		t.Errorf("silent mode logged: %s", buf.String())
	}
}
