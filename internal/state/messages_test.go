package state

import (
	"testing"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/storage"
)

func testMessages(t *testing.T) *Messages {
	t.Helper()
	return NewMessages(storage.NewMemory(), nil, zap.NewNop())
}

func TestAddCreatesListAndAppends(t *testing.T) {
	m := testMessages(t)

	m.Add(model.Message{ID: "m1", ChatID: "c1", Content: "first"})
	m.Add(model.Message{ID: "m2", ChatID: "c1", Content: "second"})

	list := m.ForChat("c1")
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != "m1" || list[1].ID != "m2" {
		t.Errorf("insertion order not preserved: %v", list)
	}
}

func TestUpdateMessage(t *testing.T) {
	m := testMessages(t)
	m.Add(model.Message{ID: "m1", ChatID: "c1", Content: "typo", Status: model.StatusSending})

	m.Update(model.Message{ID: "m1", ChatID: "c1", Content: "fixed", Status: model.StatusSent})

	list := m.ForChat("c1")
	if list[0].Content != "fixed" || list[0].Status != model.StatusSent {
		t.Errorf("update not applied: %+v", list[0])
	}

	// Unknown message or chat: silent no-op.
	m.Update(model.Message{ID: "missing", ChatID: "c1"})
	m.Update(model.Message{ID: "m1", ChatID: "nochat"})
	if len(m.ForChat("c1")) != 1 {
		t.Error("no-op update changed the list")
	}
}

func TestDeleteMessage(t *testing.T) {
	m := testMessages(t)
	m.Add(model.Message{ID: "m1", ChatID: "c1"})
	m.Add(model.Message{ID: "m2", ChatID: "c1"})

	m.Delete("c1", "m1")

	list := m.ForChat("c1")
	if len(list) != 1 || list[0].ID != "m2" {
		t.Errorf("after delete: %v, want just m2", list)
	}

	// Deleting the unknown leaves everything alone.
	m.Delete("c1", "missing")
	m.Delete("nochat", "m2")
	if len(m.ForChat("c1")) != 1 {
		t.Error("no-op delete changed the list")
	}
}

func TestAddReactionUpserts(t *testing.T) {
	m := testMessages(t)
	m.Add(model.Message{ID: "m1", ChatID: "c1"})

	m.AddReaction("c1", "m1", "👍", "alice")
	list := m.ForChat("c1")
	if len(list[0].Reactions) != 1 {
		t.Fatalf("reactions = %v, want one entry", list[0].Reactions)
	}

	// Same user reacting again replaces the emoji, never appends.
	m.AddReaction("c1", "m1", "❤️", "alice")
	list = m.ForChat("c1")
	if len(list[0].Reactions) != 1 {
		t.Fatalf("reactions = %v, want still one entry", list[0].Reactions)
	}
	if list[0].Reactions[0].Emoji != "❤️" {
		t.Errorf("emoji = %q, want replaced", list[0].Reactions[0].Emoji)
	}

	// A different user appends.
	m.AddReaction("c1", "m1", "😂", "bob")
	list = m.ForChat("c1")
	if len(list[0].Reactions) != 2 {
		t.Errorf("reactions = %v, want two entries", list[0].Reactions)
	}
}

func TestAddReactionMissingMessage(t *testing.T) {
	m := testMessages(t)
	m.Add(model.Message{ID: "m1", ChatID: "c1"})

	m.AddReaction("c1", "missing", "👍", "alice")
	m.AddReaction("nochat", "m1", "👍", "alice")

	if got := m.ForChat("c1"); len(got[0].Reactions) != 0 {
		t.Errorf("no-op reaction mutated state: %v", got[0].Reactions)
	}
}

func TestSetForChatReplaces(t *testing.T) {
	m := testMessages(t)
	m.Add(model.Message{ID: "old", ChatID: "c1"})

	m.SetForChat("c1", []model.Message{{ID: "n1", ChatID: "c1"}, {ID: "n2", ChatID: "c1"}})

	list := m.ForChat("c1")
	if len(list) != 2 || list[0].ID != "n1" {
		t.Errorf("replace failed: %v", list)
	}
}

func TestMessagesPersistAcrossRehydration(t *testing.T) {
	adapter := storage.NewMemory()

	m := NewMessages(adapter, nil, zap.NewNop())
	m.Add(model.Message{ID: "m1", ChatID: "c1", Content: "hello"})

	again := NewMessages(adapter, nil, zap.NewNop())
	list := again.ForChat("c1")
	if len(list) != 1 || list[0].Content != "hello" {
		t.Errorf("rehydrated list = %v", list)
	}
}

func TestMessagesRehydrateCorrupt(t *testing.T) {
	adapter := storage.NewMemory()
	if err := adapter.Save(storage.KeyMessages, []byte(`[1,2,3]`)); err != nil {
		t.Fatal(err)
	}

	m := NewMessages(adapter, nil, zap.NewNop())
	if len(m.ForChat("c1")) != 0 {
		t.Error("corrupt snapshot produced messages")
	}
	// The container must still be usable.
	m.Add(model.Message{ID: "m1", ChatID: "c1"})
	if len(m.ForChat("c1")) != 1 {
		t.Error("container unusable after corrupt rehydration")
	}
}
