package usecase

import (
	"context"
	"time"

	"vidtube/pkg/logger"
	"vidtube/pkg/metrics"
	"vidtube/pkg/queue"
)

// BlobStore persists the file at localPath and returns its public URL.
type BlobStore interface {
	Store(ctx context.Context, localPath string) (string, error)
}

type Notifier interface {
	PublishNotificationTask(ctx context.Context, task queue.NotificationTask) error
}

const notifyTimeout = 5 * time.Second

// publishAsync hands task to the notifier in the background. Delivery is
// best-effort and never fails the calling operation.
func publishAsync(notifier Notifier, log *logger.Logger, task queue.NotificationTask) {
	if notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		log.Info("[NOTIFICATION QUEUE] Publishing %s task: user_id=%s, actor_id=%s", task.Type, task.RecipientID, task.ActorID)
		if err := notifier.PublishNotificationTask(ctx, task); err != nil {
			log.Error("[NOTIFICATION QUEUE] Failed to publish %s task: %v", task.Type, err)
			metrics.NotificationsPublished.WithLabelValues(string(task.Type), "error").Inc()
			return
		}
		metrics.NotificationsPublished.WithLabelValues(string(task.Type), "ok").Inc()
	}()
}
