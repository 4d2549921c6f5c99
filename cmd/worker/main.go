package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/resolve"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Fatalf("worker needs a shared store, storage driver %q is process local", cfg.Storage.Driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	// Released seats reach the app instances' websocket clients through the
	// booking topic. The sweep is not latency bound, so publishing retries.
	bookingService := booking.NewBookingService(
		store,
		resolve.NewResolver(store, nil),
		booking.WithRepairGrace(time.Duration(cfg.Worker.RepairGraceMinutes)*time.Minute),
		booking.WithProducer(kafka.Retrying{Producer: producer, Attempts: 3}, cfg.Kafka.BookingTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(nil)
	go func() {
		if err := consumer.Consume(ctx, notificationHandler(sender)); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	repairTicker := time.NewTicker(time.Duration(cfg.Worker.RepairSweepMinutes) * time.Minute)
	defer repairTicker.Stop()

	log.Printf("worker started: notifications=%s repair every %dm", cfg.Kafka.NotificationsTopic, cfg.Worker.RepairSweepMinutes)
	for {
		select {
		case <-repairTicker.C:
			released, err := bookingService.RepairOrphanedSeats(ctx)
			if err != nil {
				log.Printf("repair orphaned seats: %v", err)
				continue
			}
			if len(released) > 0 {
				log.Printf("released %d orphaned seats: %v", len(released), released)
			}
		case <-ctx.Done():
			log.Printf("shutting down worker")
			bookingService.Wait()
			return
		}
	}
}

// notificationHandler mails boarding passes. Send failures are logged and the
// event is acknowledged so one broken event cannot stall the partition.
func notificationHandler(sender *email.Sender) func(context.Context, kafka.BookingEvent) error {
	return func(ctx context.Context, event kafka.BookingEvent) error {
		if event.Type != kafka.EventBoardingPassReady {
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			log.Printf("send boarding pass for seat %d: %v", event.SeatID, err)
		}
		return nil
	}
}
