// Package worker chứa các background worker chạy định kỳ của server.
package worker

import (
	"context"
	"time"

	chatsvc "active_core/internal/api/chat/service"
	"active_core/internal/logger"
)

// PresenceSweepWorker quét định kỳ cây presence và đánh offline các user
// có lastActive cũ hơn ngưỡng (client rớt mạng mà không kịp ghi offline).
type PresenceSweepWorker struct {
	chatService *chatsvc.ChatService
	interval    time.Duration // Khoảng thời gian giữa các lần quét
	staleAfter  time.Duration // Presence online cũ hơn ngưỡng này bị coi là stale
}

// NewPresenceSweepWorker tạo mới PresenceSweepWorker.
// Tham số:
//   - chatService: ChatService đang chạy (dùng chung store với hub)
//   - interval: Chu kỳ quét (mặc định: 5 phút)
//   - staleAfter: Ngưỡng coi presence là stale (mặc định: 10 phút)
func NewPresenceSweepWorker(chatService *chatsvc.ChatService, interval, staleAfter time.Duration) *PresenceSweepWorker {
	if interval < 30*time.Second {
		interval = 5 * time.Minute
	}
	if staleAfter < time.Minute {
		staleAfter = 10 * time.Minute
	}
	return &PresenceSweepWorker{
		chatService: chatService,
		interval:    interval,
		staleAfter:  staleAfter,
	}
}

// Start chạy worker cho đến khi ctx bị hủy.
func (w *PresenceSweepWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":   w.interval.String(),
		"staleAfter": w.staleAfter.String(),
	}).Info("🔄 [PRESENCE_SWEEP] Starting Presence Sweep Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [PRESENCE_SWEEP] Presence Sweep Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔄 [PRESENCE_SWEEP] Panic khi quét presence, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				swept, err := w.chatService.SweepStalePresence(ctx, w.staleAfter)
				if err != nil {
					log.WithError(err).Error("🔄 [PRESENCE_SWEEP] Failed to sweep stale presence")
					return
				}

				if swept > 0 {
					log.WithFields(map[string]interface{}{
						"swept":      swept,
						"staleAfter": w.staleAfter.String(),
					}).Info("🔄 [PRESENCE_SWEEP] Marked stale presence offline")
				}
				// swept = 0 thì không log (giảm log noise)
			}()
		}
	}
}
