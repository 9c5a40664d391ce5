// Package seed populates a fresh profile with a small demo dataset, the
// way the client ships with example conversations before any real use.
// Seeding runs at most once per profile, gated by a marker snapshot.
package seed

import (
	"go.uber.org/zap"

	"github.com/pombo-im/pombo/internal/model"
	"github.com/pombo-im/pombo/internal/state"
	"github.com/pombo-im/pombo/internal/storage"
)

// Apply seeds chats, messages and stories unless the profile was already
// seeded. Returns true when data was applied.
func Apply(adapter storage.Adapter, chats *state.Chats, messages *state.Messages, stories *state.Stories, logger *zap.Logger) (bool, error) {
	raw, err := adapter.Load(storage.KeySeed)
	if err != nil {
		return false, err
	}
	if raw != nil {
		return false, nil
	}

	users := demoUsers()
	demo := demoChats(users)
	chats.SetAll(demo)
	for chatID, msgs := range demoMessages(users) {
		messages.SetForChat(chatID, msgs)
	}
	stories.SetAll(demoStories(users))

	if err := adapter.Save(storage.KeySeed, []byte("1")); err != nil {
		return false, err
	}
	logger.Info("demo data seeded", zap.Int("chats", len(demo)))
	return true, nil
}

func demoUsers() []model.User {
	now := model.NowMillis()
	return []model.User{
		{ID: "u-ana", Name: "Ana Souza", Username: "ana", About: "Hey there!", LastSeen: now, IsOnline: true},
		{ID: "u-bruno", Name: "Bruno Lima", Username: "bruno", About: "Busy", LastSeen: now - 30*60*1000},
		{ID: "u-clara", Name: "Clara Reis", Username: "clara", About: "At work", LastSeen: now - 5*60*1000},
	}
}

func demoChats(users []model.User) []model.Chat {
	return []model.Chat{
		{
			ID:           "c-ana",
			Kind:         model.ChatPersonal,
			Name:         users[0].Name,
			Participants: []string{users[0].ID},
			UnreadCount:  2,
		},
		{
			ID:           "c-friends",
			Kind:         model.ChatGroup,
			Name:         "Friends",
			Participants: []string{users[0].ID, users[1].ID, users[2].ID},
			UnreadCount:  5,
			IsFavourite:  true,
			MemberCount:  3,
		},
		{
			ID:           "c-news",
			Kind:         model.ChatChannel,
			Name:         "Daily News",
			Participants: []string{users[1].ID},
			Description:  "Curated headlines",
			MemberCount:  1240,
		},
		{
			ID:           "c-old",
			Kind:         model.ChatPersonal,
			Name:         users[1].Name,
			Participants: []string{users[1].ID},
			IsArchived:   true,
		},
	}
}

func demoMessages(users []model.User) map[string][]model.Message {
	now := model.NowMillis()
	return map[string][]model.Message{
		"c-ana": {
			{ID: model.NewID(), ChatID: "c-ana", SenderID: users[0].ID, Content: "Oi! Tudo bem?", Timestamp: now - 10*60*1000, Type: model.MessageText, Status: model.StatusDelivered},
			{ID: model.NewID(), ChatID: "c-ana", SenderID: users[0].ID, Content: "Did you see the photos?", Timestamp: now - 9*60*1000, Type: model.MessageText, Status: model.StatusDelivered},
		},
		"c-friends": {
			{ID: model.NewID(), ChatID: "c-friends", SenderID: users[1].ID, Content: "Weekend plans?", Timestamp: now - 60*60*1000, Type: model.MessageText, Status: model.StatusRead},
			{ID: model.NewID(), ChatID: "c-friends", SenderID: users[2].ID, Content: "Beach!", Timestamp: now - 55*60*1000, Type: model.MessageText, Status: model.StatusRead,
				Reactions: []model.Reaction{{Emoji: "👍", UserID: users[1].ID}}},
		},
	}
}

func demoStories(users []model.User) map[string][]model.Story {
	now := model.NowMillis()
	return map[string][]model.Story{
		users[0].ID: {
			{ID: model.NewID(), UserID: users[0].ID, Content: "Sunset 🌅", Type: "text", BackgroundColor: "#075e54", Timestamp: now - 2*60*60*1000, Views: []string{}},
		},
		users[2].ID: {
			{ID: model.NewID(), UserID: users[2].ID, Content: "New project!", Type: "text", BackgroundColor: "#128c7e", Timestamp: now - 8*60*60*1000, Views: []string{users[0].ID}},
		},
	}
}
