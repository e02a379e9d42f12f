package domain

import (
	"encoding/json"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableName(t *testing.T) {
	if (Favorite{}).TableName() != "favorites" {
		t.Fatalf("Favorite.TableName() = %q; want %q", (Favorite{}).TableName(), "favorites")
	}
}

func TestMigrations_Indexes_AndUniqueUserDate(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Favorite{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasTable(&Favorite{}) {
		t.Fatalf("expected favorites table to exist")
	}
	if !m.HasIndex(&Favorite{}, "ux_favorites_user_date") {
		t.Fatalf("expected unique index ux_favorites_user_date on favorites")
	}
	if !m.HasIndex(&Favorite{}, "idx_favorites_user_created") {
		t.Fatalf("expected index idx_favorites_user_created on favorites")
	}

	now := time.Now().UTC()
	first := &Favorite{
		ID: "65f0c0ffee0000000000000a", UserID: "u1", Title: "T", URL: "http://x/a.jpg",
		Date: "2024-05-01", Explanation: "e", MediaType: MediaTypeImage, CreatedAt: now, UpdatedAt: now,
	}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("insert first: %v", err)
	}

	// Same user + same date with a fresh id must be rejected by the index.
	dup := *first
	dup.ID = "65f0c0ffee0000000000000b"
	if err := db.Create(&dup).Error; err == nil {
		t.Fatalf("expected unique violation for same (user_id, date)")
	}

	// Another user on the same date is fine.
	other := *first
	other.ID = "65f0c0ffee0000000000000c"
	other.UserID = "u2"
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("insert other user: %v", err)
	}
}

func TestFavorite_JSONShape(t *testing.T) {
	f := Favorite{ID: "abc", UserID: "u1", MediaType: MediaTypeVideo}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"_id", "userId", "title", "url", "date", "explanation", "mediaType", "createdAt", "updatedAt"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("expected key %q in %s", k, b)
		}
	}
	if m["_id"] != "abc" || m["mediaType"] != "video" {
		t.Fatalf("unexpected values: %s", b)
	}
}
