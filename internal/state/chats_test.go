package state

import (
	"testing"

	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/storage"
)

func testChats(t *testing.T, chats ...model.Chat) *Chats {
	t.Helper()
	c := NewChats(storage.NewMemory(), nil, zap.NewNop())
	c.SetAll(chats)
	return c
}

func TestAddPrepends(t *testing.T) {
	c := testChats(t, model.Chat{ID: "old", Kind: model.ChatPersonal, Name: "Old"})
	c.Add(model.Chat{ID: "new", Kind: model.ChatPersonal, Name: "New"})

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != "new" {
		t.Errorf("front chat = %q, want the newly added one", all[0].ID)
	}
}

func TestUpdateReplacesMatchingID(t *testing.T) {
	c := testChats(t, model.Chat{ID: "c1", Name: "Before"})

	c.Update(model.Chat{ID: "c1", Name: "After"})
	if got, _ := c.Get("c1"); got.Name != "After" {
		t.Errorf("Name = %q, want After", got.Name)
	}

	// Unknown id: silent no-op, directory unchanged.
	c.Update(model.Chat{ID: "missing", Name: "Ghost"})
	if len(c.All()) != 1 {
		t.Error("no-op update changed the directory")
	}
}

func TestMarkAsRead(t *testing.T) {
	c := testChats(t,
		model.Chat{ID: "c1", UnreadCount: 3},
		model.Chat{ID: "c2", UnreadCount: 0},
	)

	c.MarkAsRead("c1")
	if got, _ := c.Get("c1"); got.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", got.UnreadCount)
	}

	// Already-zero counter stays zero.
	c.MarkAsRead("c2")
	if got, _ := c.Get("c2"); got.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d, want 0", got.UnreadCount)
	}

	// Unknown id does not panic or mutate.
	c.MarkAsRead("missing")
}

func TestOpenSelectsAndResetsUnread(t *testing.T) {
	c := testChats(t, model.Chat{ID: "c1", UnreadCount: 7})

	c.Open("c1")
	if c.Active() != "c1" {
		t.Errorf("Active = %q, want c1", c.Active())
	}
	if got, _ := c.Get("c1"); got.UnreadCount != 0 {
		t.Errorf("UnreadCount = %d after Open, want 0", got.UnreadCount)
	}
}

func TestActiveSelectionIsTransient(t *testing.T) {
	adapter := storage.NewMemory()
	c := NewChats(adapter, nil, zap.NewNop())
	c.SetAll([]model.Chat{{ID: "c1"}})
	c.SetActive("c1")

	again := NewChats(adapter, nil, zap.NewNop())
	if again.Active() != "" {
		t.Errorf("rehydrated Active = %q, want none", again.Active())
	}
	if len(again.All()) != 1 {
		t.Error("chat list itself should have been persisted")
	}
}

func TestToggles(t *testing.T) {
	c := testChats(t, model.Chat{ID: "c1"})

	c.TogglePin("c1")
	if got, _ := c.Get("c1"); !got.IsPinned {
		t.Error("pin not set")
	}
	c.TogglePin("c1")
	if got, _ := c.Get("c1"); got.IsPinned {
		t.Error("pin not cleared")
	}

	c.ToggleFavourite("c1")
	if got, _ := c.Get("c1"); !got.IsFavourite {
		t.Error("favourite not set")
	}

	c.ToggleArchive("c1")
	if got, _ := c.Get("c1"); !got.IsArchived {
		t.Error("archive not set")
	}

	// Unknown ids are silent no-ops.
	c.TogglePin("missing")
	c.ToggleArchive("missing")
}

func TestFilterCategories(t *testing.T) {
	c := testChats(t,
		model.Chat{ID: "p", Kind: model.ChatPersonal, Name: "Ana", UnreadCount: 2},
		model.Chat{ID: "g", Kind: model.ChatGroup, Name: "Friends", IsFavourite: true},
		model.Chat{ID: "ch", Kind: model.ChatChannel, Name: "News"},
		model.Chat{ID: "arch", Kind: model.ChatGroup, Name: "Archived Friends", UnreadCount: 9, IsFavourite: true, IsArchived: true},
	)

	ids := func(chats []model.Chat) []string {
		var out []string
		for _, chat := range chats {
			out = append(out, chat.ID)
		}
		return out
	}

	cases := []struct {
		name   string
		query  string
		filter ChatFilter
		want   []string
	}{
		{"all excludes archived", "", FilterAll, []string{"p", "g", "ch"}},
		{"unread", "", FilterUnread, []string{"p"}},
		{"favourites", "", FilterFavourites, []string{"g"}},
		{"groups include channels", "", FilterGroups, []string{"g", "ch"}},
		{"search is case-insensitive", "FRIEND", FilterAll, []string{"g"}},
		{"search and category combine", "friends", FilterFavourites, []string{"g"}},
		{"no match", "zzz", FilterAll, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(c.Filter(tc.query, tc.filter))
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

// Mirrors the directory scenario from the acceptance checklist: favourite
// and unread filters over mixed flags, then a read reset.
func TestFilterScenario(t *testing.T) {
	c := testChats(t,
		model.Chat{ID: "A", Name: "A", UnreadCount: 3, IsFavourite: true},
		model.Chat{ID: "B", Name: "B", UnreadCount: 0, IsArchived: true},
	)

	fav := c.Filter("", FilterFavourites)
	if len(fav) != 1 || fav[0].ID != "A" {
		t.Fatalf("favourites = %v, want [A]", fav)
	}

	unread := c.Filter("", FilterUnread)
	if len(unread) != 1 || unread[0].ID != "A" {
		t.Fatalf("unread = %v, want [A]", unread)
	}

	c.MarkAsRead("A")
	if got := c.Filter("", FilterUnread); len(got) != 0 {
		t.Errorf("unread after MarkAsRead = %v, want empty", got)
	}
}

func TestChatsRehydrateCorrupt(t *testing.T) {
	adapter := storage.NewMemory()
	if err := adapter.Save(storage.KeyChats, []byte(`{"oops":`)); err != nil {
		t.Fatal(err)
	}

	c := NewChats(adapter, nil, zap.NewNop())
	if len(c.All()) != 0 {
		t.Error("corrupt snapshot produced chats")
	}
}
