// Package delivery consumes code delivery events and dispatches them
// out of band. It is the consumer side of the fire-and-forget publish
// done at code creation; a dropped event only costs the user a resend.
package delivery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// Worker subscribes to the code topic and forwards each event to the
// notification service.
type Worker struct {
	client   *redis.Client
	notifier domain.NotificationService
	logger   *zap.Logger
	pubsub   *redis.PubSub
	done     chan struct{}
}

// NewWorker creates a delivery worker.
func NewWorker(client *redis.Client, notifier domain.NotificationService, logger *zap.Logger) *Worker {
	return &Worker{
		client:   client,
		notifier: notifier,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start subscribes and begins dispatching in a background goroutine.
func (w *Worker) Start(ctx context.Context) {
	w.pubsub = w.client.Subscribe(ctx, domain.CodeDeliveryTopic)
	ch := w.pubsub.Channel()

	go func() {
		defer close(w.done)
		for msg := range ch {
			w.dispatch(msg.Payload)
		}
	}()
}

// Stop closes the subscription and waits for in-flight dispatches.
func (w *Worker) Stop() {
	if w.pubsub == nil {
		return
	}
	_ = w.pubsub.Close()
	<-w.done
}

func (w *Worker) dispatch(payload string) {
	var event domain.CodeDeliveryEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		w.logger.Warn("dropping malformed code delivery event", zap.Error(err))
		return
	}

	var err error
	switch event.Channel {
	case domain.ChannelPhone:
		message := fmt.Sprintf("Your verification code is: %s", event.Code)
		err = w.notifier.SendSMS(event.Destination, message)
	case domain.ChannelEmail:
		body := fmt.Sprintf("Your verification code is: %s", event.Code)
		err = w.notifier.SendEmail(event.Destination, "Verification code", body)
	default:
		w.logger.Warn("unknown delivery channel", zap.String("channel", string(event.Channel)))
		return
	}

	if err != nil {
		w.logger.Error("code delivery failed",
			zap.String("channel", string(event.Channel)),
			zap.Error(err))
	}
}
