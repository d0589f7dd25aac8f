package persistence

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/event-platform/internal/config"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := migrationFiles(dir)
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if want := []string{"001_a.sql", "002_b.sql"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := migrationFiles(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected missing dir to fail")
	}
}

func TestRunMigrationsWithoutPoolIsNoop(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, "does-not-matter", zap.NewNop()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestPostgresWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPostgres: %v", err)
	}
	if pg.PoolHandle() != nil {
		t.Fatal("expected nil pool")
	}
	if err := pg.Ping(context.Background()); err == nil {
		t.Fatal("expected ping without pool to fail")
	}
	pg.Close()
}

func TestRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(context.Background(), config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	defer r.Close()

	if err := r.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var missing *Redis
	if err := missing.Ping(context.Background()); err == nil {
		t.Fatal("expected nil client ping to fail")
	}
}
