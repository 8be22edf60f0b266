package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/repositories"
)

func testConfig(t *testing.T, autoMigrate bool) repositories.SQLiteConfig {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "database_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	return repositories.SQLiteConfig{
		Path:            filepath.Join(tempDir, "movies.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     autoMigrate,
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func TestConnectionManager_ConnectClose(t *testing.T) {
	cm := NewConnectionManager(testConfig(t, false), quietLogger())

	if cm.GetDB() != nil {
		t.Error("GetDB() should return nil before Connect()")
	}
	if err := cm.Ping(); err == nil {
		t.Error("Ping() should fail before Connect()")
	}

	if err := cm.Connect(); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	if err := cm.Connect(); err == nil {
		t.Error("Connect() should fail when already connected")
	}
	if err := cm.HealthCheck(); err != nil {
		t.Errorf("HealthCheck() failed: %v", err)
	}

	if err := cm.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := cm.Close(); err != nil {
		t.Errorf("double Close() should not fail: %v", err)
	}
}

func TestMigrations_UpStatusValidateDown(t *testing.T) {
	cm := NewConnectionManager(testConfig(t, true), quietLogger())
	if err := cm.Connect(); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer cm.Close()

	mm := cm.GetMigrationManager()
	if err := mm.ValidateSchema(); err != nil {
		t.Fatalf("ValidateSchema() failed: %v", err)
	}

	status, err := mm.GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus() failed: %v", err)
	}
	if !status.Applied || status.Dirty || status.Version != 3 {
		t.Errorf("unexpected status: %+v", status)
	}

	// re-running is a no-op
	if err := mm.RunMigrations(); err != nil {
		t.Errorf("second RunMigrations() failed: %v", err)
	}

	if _, err := cm.GetDB().Exec(`INSERT INTO movies (id, title) VALUES (1, 'First')`); err != nil {
		t.Fatalf("insert movie: %v", err)
	}
	stats, err := mm.TableStats()
	if err != nil {
		t.Fatalf("TableStats() failed: %v", err)
	}
	if len(stats) != len(ExpectedTables) {
		t.Fatalf("expected %d tables, got %+v", len(ExpectedTables), stats)
	}
	for _, st := range stats {
		want := int64(0)
		if st.Name == "movies" {
			want = 1
		}
		if !st.Exists || st.Rows != want {
			t.Errorf("unexpected stat %+v", st)
		}
	}

	if err := mm.RollbackMigration(); err != nil {
		t.Fatalf("RollbackMigration() failed: %v", err)
	}

	stats, err = mm.TableStats()
	if err != nil {
		t.Fatalf("TableStats() after rollback failed: %v", err)
	}
	if stats[2].Name != "movie_reviews" || stats[2].Exists {
		t.Errorf("movie_reviews should be gone: %+v", stats[2])
	}
	if err := mm.ValidateSchema(); err == nil {
		t.Error("ValidateSchema() should fail once movie_reviews is dropped")
	}
}
