package chatsvc

import (
	"context"
	"time"

	chatmodels "active_core/internal/api/chat/models"
)

// SweepStalePresence đánh offline các presence online có lastActive cũ hơn ngưỡng.
// Trả về số presence đã chuyển offline. Typing cũng được tắt vì user không còn hoạt động.
func (s *ChatService) SweepStalePresence(ctx context.Context, staleAfter time.Duration) (int, error) {
	var rooms map[string]map[string]chatmodels.Presence
	if err := s.store.Get(ctx, chatmodels.PresencePath, &rooms); err != nil {
		return 0, err
	}

	threshold := time.Now().Add(-staleAfter).UnixMilli()
	swept := 0
	for roomID, users := range rooms {
		for uid, presence := range users {
			if !presence.Online || presence.LastActive >= threshold {
				continue
			}
			offline := chatmodels.Presence{
				Online:     false,
				LastActive: presence.LastActive,
				Typing:     false,
			}
			if err := s.store.Set(ctx, chatmodels.RoomPresencePath(roomID, uid), offline); err != nil {
				return swept, err
			}
			swept++
		}
	}
	return swept, nil
}
