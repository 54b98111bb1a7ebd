// Package notification pushes new-booking alerts to operator devices.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"hostel-booking-backend/internal/model"
)

// queuePerWorker bounds how many bookings may wait for a free worker.
const queuePerWorker = 32

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

type pushStore interface {
	GetBooking(ctx context.Context, id string) (model.Booking, error)
	ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// Payload is the JSON body delivered to the operator's service worker.
type Payload struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	BookingID string `json:"booking_id"`
	URL       string `json:"url"`
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan string
	store   pushStore
	webpush *webpush.Options
	sender  NotificationSender
	log     *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s pushStore, webpushOptions *webpush.Options, log *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size*queuePerWorker),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log,
	}
}

// Start launches the worker goroutines. They exit when ctx is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log := wp.log.With(zap.Int("worker", id))
	log.Debug("notification worker started")
	for {
		select {
		case bookingID := <-wp.jobs:
			wp.notifyNewBooking(ctx, bookingID)
		case <-ctx.Done():
			log.Debug("notification worker shutting down")
			return
		}
	}
}

// Dispatch queues a booking for notification. It never blocks; when the
// queue is full the job is dropped.
func (wp *WorkerPool) Dispatch(bookingID string) {
	select {
	case wp.jobs <- bookingID:
	default:
		wp.log.Warn("notification queue full; dropping job", zap.String("booking_id", bookingID))
	}
}

func (wp *WorkerPool) notifyNewBooking(ctx context.Context, bookingID string) {
	subs, err := wp.store.ListPushSubscriptions(ctx)
	if err != nil {
		wp.log.Error("failed to list push subscriptions", zap.String("booking_id", bookingID), zap.Error(err))
		return
	}
	if len(subs) == 0 {
		return
	}

	b, err := wp.store.GetBooking(ctx, bookingID)
	if err != nil {
		wp.log.Error("failed to load booking for notification", zap.String("booking_id", bookingID), zap.Error(err))
		return
	}

	payload, err := json.Marshal(newBookingPayload(b))
	if err != nil {
		wp.log.Error("failed to encode notification", zap.String("booking_id", bookingID), zap.Error(err))
		return
	}

	wp.log.Info("sending booking notifications", zap.String("booking_id", bookingID), zap.Int("subscriptions", len(subs)))
	for _, sub := range subs {
		wp.sendNotification(ctx, sub, payload)
	}
}

func newBookingPayload(b model.Booking) Payload {
	return Payload{
		Title:     "New booking request",
		Body:      fmt.Sprintf("%s requested %s from %s", b.FullName, b.RoomName, b.PreferredMoveInDate),
		BookingID: b.ID,
		URL:       "/admin/bookings",
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Warn("push delivery failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		wp.log.Info("push subscription expired; deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.store.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
			wp.log.Error("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
