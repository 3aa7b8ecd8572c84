package datasync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/burgerhouse/storefront/internal/models"
)

// recordingHandler captures every push it receives.
type recordingHandler struct {
	pushes [][]models.Record
}

func (h *recordingHandler) OnDataChanged(records []models.Record) {
	h.pushes = append(h.pushes, records)
}

func rec(id, name string) models.Record {
	body, _ := json.Marshal(map[string]string{"type": models.RecordTypeProduct, "id": id, "name": name})
	return models.Record{Type: models.RecordTypeProduct, ID: id, Body: body}
}

func TestMemory_InitPushesCurrentCollection(t *testing.T) {
	m := NewMemory()
	h := &recordingHandler{}

	if err := m.Init(context.Background(), h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.pushes) != 1 {
		t.Fatalf("expected 1 push on init, got %d", len(h.pushes))
	}
	if len(h.pushes[0]) != 0 {
		t.Errorf("expected empty initial collection, got %d records", len(h.pushes[0]))
	}
}

func TestMemory_CreatePushesFullCollection(t *testing.T) {
	m := NewMemory()
	h := &recordingHandler{}
	m.Init(context.Background(), h)

	if err := m.Create(context.Background(), rec("p1", "Burger Clássico")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Create(context.Background(), rec("p2", "Batata Frita")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Init push plus one per write, each carrying the whole collection.
	if len(h.pushes) != 3 {
		t.Fatalf("expected 3 pushes, got %d", len(h.pushes))
	}
	last := h.pushes[len(h.pushes)-1]
	if len(last) != 2 {
		t.Errorf("expected full collection of 2 records, got %d", len(last))
	}
}

func TestMemory_CreateDuplicateID(t *testing.T) {
	m := NewMemory()
	h := &recordingHandler{}
	m.Init(context.Background(), h)

	m.Create(context.Background(), rec("p1", "Burger Clássico"))
	pushesBefore := len(h.pushes)

	if err := m.Create(context.Background(), rec("p1", "Outro")); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if len(h.pushes) != pushesBefore {
		t.Error("a rejected write must not push")
	}
}

func TestMemory_Update(t *testing.T) {
	m := NewMemory()
	h := &recordingHandler{}
	m.Init(context.Background(), h)
	m.Create(context.Background(), rec("p1", "Burger Clássico"))

	if err := m.Update(context.Background(), rec("p1", "Burger Bacon")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := h.pushes[len(h.pushes)-1]
	var got struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(last[0].Body, &got); err != nil {
		t.Fatalf("decode pushed record: %v", err)
	}
	if got.Name != "Burger Bacon" {
		t.Errorf("expected updated body, got %q", got.Name)
	}

	if err := m.Update(context.Background(), rec("missing", "x")); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMemory_PushedSnapshotIsACopy(t *testing.T) {
	m := NewMemory()
	h := &recordingHandler{}
	m.Init(context.Background(), h)
	m.Create(context.Background(), rec("p1", "Burger Clássico"))

	h.pushes[len(h.pushes)-1][0] = rec("p1", "tampered")

	h2 := &recordingHandler{}
	m.Init(context.Background(), h2)
	var got struct {
		Name string `json:"name"`
	}
	json.Unmarshal(h2.pushes[0][0].Body, &got)
	if got.Name != "Burger Clássico" {
		t.Errorf("internal collection was mutated through a push: %q", got.Name)
	}
}
