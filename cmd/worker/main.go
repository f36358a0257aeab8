package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/smetanin/airseats/config"
	"github.com/smetanin/airseats/internal/email"
	"github.com/smetanin/airseats/internal/kafka"
	"github.com/smetanin/airseats/internal/repository"
)

// The worker is read-only with respect to inventory: it delivers
// notifications and audits the availability counters, but never writes seat
// occupancy or available_seats. The booking transactions own those.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	reportRepo := repository.NewReportRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweep := time.Duration(cfg.Worker.AuditSweepMinutes) * time.Minute
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	auditTicker := time.NewTicker(sweep)
	defer auditTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-auditTicker.C:
			drifts, err := reportRepo.AuditCounters(ctx)
			if err != nil {
				log.Printf("audit counters error: %v", err)
				continue
			}
			for _, d := range drifts {
				log.Printf("counter drift on flight %d: available_seats=%d free_seats=%d confirmed_bookings=%d",
					d.FlightID, d.AvailableSeats, d.FreeSeats, d.ConfirmedBookings)
			}
			if len(drifts) == 0 {
				log.Printf("counter audit clean")
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
