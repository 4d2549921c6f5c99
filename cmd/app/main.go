package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/realtime"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
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

	// The in-memory store starts empty, so it is seeded with the same dataset
	// the generator would import.
	if cfg.Storage.Driver == config.StorageDriverMemory {
		ds, err := dataset.NewGenerator(dataset.Options{
			Seed:  cfg.Generator.Seed,
			Year:  cfg.Generator.Year,
			Month: time.Month(cfg.Generator.Month),
		}).Generate()
		if err != nil {
			log.Fatalf("generate dataset: %v", err)
		}
		if err := store.Importer.Import(ctx, ds); err != nil {
			log.Fatalf("import dataset: %v", err)
		}
		log.Printf("memory store seeded: %s", ds.Summary())
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ReferenceCacheTTL)*time.Second)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.Printf("WARNING: kafka is not reachable, booking events will be dropped: %v", err)
	}

	hub := realtime.NewHub()
	go hub.Run(ctx)

	// Every instance keeps its own websocket clients, so each one reads the
	// whole booking topic under its own group.
	releases := kafka.NewConsumer(cfg.Kafka.Brokers, liveGroupID(cfg.Kafka.GroupID), cfg.Kafka.BookingTopic, kafka.FromLatest())
	defer releases.Close()
	go func() {
		if err := releases.Consume(ctx, forwardReleases(hub)); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("seat release listener stopped: %v", err)
		}
	}()

	resolver := resolve.NewResolver(store, redisCache)
	flightService := flights.NewFlightService(store, resolver, time.Duration(cfg.Booking.SearchWindowHours)*time.Hour)
	bookingService := booking.NewBookingService(
		store,
		resolver,
		booking.WithProducer(producer, cfg.Kafka.BookingTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithObserver(hub),
	)

	log.Printf("listening on %s (storage=%s)", cfg.HTTP.Address, cfg.Storage.Driver)
	if err := bootstrap.Run(ctx, cfg, bootstrap.Services{
		Flights:  flightService,
		Bookings: bookingService,
		Live:     hub,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
	bookingService.Wait()
}

type releaseListener interface {
	SeatsReleased(flightID string, seatIDs []int64)
}

// forwardReleases hands seats freed by the worker's repair sweep to the local
// websocket hub. Other booking events are already broadcast by the instance
// that made the booking.
func forwardReleases(listener releaseListener) func(context.Context, kafka.BookingEvent) error {
	return func(_ context.Context, event kafka.BookingEvent) error {
		if event.Type == kafka.EventSeatsReleased && len(event.SeatIDs) > 0 {
			listener.SeatsReleased(event.FlightID, event.SeatIDs)
		}
		return nil
	}
}

func liveGroupID(base string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = fmt.Sprintf("pid%d", os.Getpid())
	}
	return base + "-live-" + host
}
