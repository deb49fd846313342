package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/apper-canvas/kidroutine/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestChildCRUD(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChildStore(db)

	// Create
	child, err := cs.Create("Mia", 6, "🦊")
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.Name != "Mia" {
		t.Errorf("name = %q, want %q", child.Name, "Mia")
	}
	if child.Age != 6 {
		t.Errorf("age = %d, want 6", child.Age)
	}
	if child.Points != 0 {
		t.Errorf("points = %d, want 0", child.Points)
	}
	if child.HasPIN {
		t.Error("new child should not have a PIN")
	}

	// Get
	got, err := cs.GetByID(child.ID)
	if err != nil {
		t.Fatalf("get child: %v", err)
	}
	if got.Avatar != "🦊" {
		t.Errorf("avatar = %q, want %q", got.Avatar, "🦊")
	}

	// Update
	updated, err := cs.Update(child.ID, "Mia B", 7, "🐻")
	if err != nil {
		t.Fatalf("update child: %v", err)
	}
	if updated.Name != "Mia B" || updated.Age != 7 {
		t.Errorf("updated = %q/%d, want %q/7", updated.Name, updated.Age, "Mia B")
	}

	// List
	children, err := cs.List()
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(children))
	}

	// Delete
	if err := cs.Delete(child.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}
	got, err = cs.GetByID(child.ID)
	if err != nil {
		t.Fatalf("get deleted child: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted child")
	}
}

func TestChildDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChildStore(db)

	if err := cs.Delete(12345); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("delete missing: got %v, want sql.ErrNoRows", err)
	}
}

func TestChildGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChildStore(db)

	got, err := cs.GetByID(9999)
	if err != nil {
		t.Fatalf("get child: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent child")
	}
}

func TestChildPoints(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChildStore(db)

	child, _ := cs.Create("Leo", 8, "🦁")

	if err := cs.AddPointsTx(db, child.ID, 25); err != nil {
		t.Fatalf("add points: %v", err)
	}
	got, _ := cs.GetByID(child.ID)
	if got.Points != 25 {
		t.Errorf("points = %d, want 25", got.Points)
	}

	if err := cs.AddPointsTx(db, child.ID, -10); err != nil {
		t.Fatalf("subtract points: %v", err)
	}
	got, _ = cs.GetByID(child.ID)
	if got.Points != 15 {
		t.Errorf("points = %d, want 15", got.Points)
	}

	if err := cs.SetPointsTx(db, child.ID, 0); err != nil {
		t.Fatalf("set points: %v", err)
	}
	got, _ = cs.GetByID(child.ID)
	if got.Points != 0 {
		t.Errorf("points after reset = %d, want 0", got.Points)
	}
}

func TestChildPIN(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChildStore(db)

	child, _ := cs.Create("Ana", 5, "🐰")

	hash, err := cs.GetPINHash(child.ID)
	if err != nil {
		t.Fatalf("get pin: %v", err)
	}
	if hash != "" {
		t.Errorf("expected empty hash, got %q", hash)
	}

	if err := cs.SetPIN(child.ID, "bcrypt-hash-here"); err != nil {
		t.Fatalf("set pin: %v", err)
	}
	hash, _ = cs.GetPINHash(child.ID)
	if hash != "bcrypt-hash-here" {
		t.Errorf("hash = %q, want %q", hash, "bcrypt-hash-here")
	}
	got, _ := cs.GetByID(child.ID)
	if !got.HasPIN {
		t.Error("has_pin should be true after SetPIN")
	}

	if err := cs.ClearPIN(child.ID); err != nil {
		t.Fatalf("clear pin: %v", err)
	}
	got, _ = cs.GetByID(child.ID)
	if got.HasPIN {
		t.Error("has_pin should be false after ClearPIN")
	}
}

func TestDeleteChildCascades(t *testing.T) {
	db := setupTestDB(t)
	cs := NewChildStore(db)
	ts := NewTaskStore(db)
	sts := NewScheduledTaskStore(db)
	rs := NewRewardStore(db)

	child, _ := cs.Create("Noa", 9, "🐸")
	task, _ := ts.Create("Water plants", "Chores", 15, 5, "", "🪴")
	st, err := sts.Create(task.ID, child.ID, "2026-08-29", "09:00")
	if err != nil {
		t.Fatalf("create scheduled task: %v", err)
	}
	reward, err := rs.Create(child.ID, "Sticker", 5, "Treat", "⭐")
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}

	if err := cs.Delete(child.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}

	gotST, _ := sts.GetByID(st.ID)
	if gotST != nil {
		t.Error("scheduled task should cascade on child delete")
	}
	gotR, _ := rs.GetByID(reward.ID)
	if gotR != nil {
		t.Error("reward should cascade on child delete")
	}
}
