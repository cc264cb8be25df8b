package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jcastellanos/pos-backend/pkg/config"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    "file::memory:?cache=shared",
	}, nil)
	if err != nil {
		t.Fatalf("failed to open sqlite client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestClientPing(t *testing.T) {
	client := newTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newTestClient(t)

	if err := client.DB().Exec(`CREATE TABLE IF NOT EXISTS tx_probe (id INTEGER PRIMARY KEY, label TEXT)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	boom := errors.New("boom")
	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO tx_probe (label) VALUES ('pending')`).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	var count int64
	if err := client.DB().Raw(`SELECT COUNT(*) FROM tx_probe`).Scan(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave zero rows, got %d", count)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error must not be a violation")
	}
	pg := errors.New(`duplicate key value violates unique constraint "idx_products_name_lower"`)
	if !IsUniqueViolation(pg, "") {
		t.Fatal("expected postgres duplicate key message to match")
	}
	if !IsUniqueViolation(pg, "idx_products_name_lower") {
		t.Fatal("expected constraint name to match")
	}
	lite := errors.New("UNIQUE constraint failed: index 'idx_products_name_lower'")
	if !IsUniqueViolation(lite, "") {
		t.Fatal("expected sqlite unique message to match")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("unrelated error must not match")
	}
}
