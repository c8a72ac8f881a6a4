package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/Clinic-QueueService/internal/config"
	bookingRepo "github.com/m04kA/Clinic-QueueService/internal/infra/storage/booking"
	notifyServiceClient "github.com/m04kA/Clinic-QueueService/internal/integrations/notifyservice"
	queueService "github.com/m04kA/Clinic-QueueService/internal/service/queue"
	"github.com/m04kA/Clinic-QueueService/pkg/logger"
)

// Интервал сканирования: окно напоминаний шириной 10 минут,
// пятиминутный шаг гарантирует попадание каждой записи в окно
const scanInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting reminder daemon...")

	catalog, err := cfg.Clinic.ToCatalog()
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)

	bookingRepository := bookingRepo.NewRepository(db)

	queueSvc := queueService.NewService(
		bookingRepository,
		notifyClient,
		catalog,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down reminder daemon...")
		cancel()
	}()

	ticker := time.NewTicker(scanInterval)
	defer ticker.Stop()

	// Первый проход сразу после старта
	runScan(ctx, queueSvc, log)

	for {
		select {
		case <-ctx.Done():
			log.Info("Reminder daemon stopped")
			return
		case <-ticker.C:
			runScan(ctx, queueSvc, log)
		}
	}
}

func runScan(ctx context.Context, svc *queueService.Service, log *logger.Logger) {
	sent, err := svc.ScanReminders(ctx)
	if err != nil {
		log.Error("Reminder scan failed: %v", err)
		return
	}
	if sent > 0 {
		log.Info("Reminder scan complete: %d reminders sent", sent)
	}
}
