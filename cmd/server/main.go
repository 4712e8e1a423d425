package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/configs"
	httpdelivery "github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/delivery/http"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/delivery/kafka"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/partner"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository/postgres"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/service"
)

// @title LensFlow CRM
// @version 1.0
// @description Role-based order management for an eyewear production laboratory, its client clinics and an external partner system.

// @host localhost:8081
// @basePath /

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var repo *repository.Repository
	switch cfg.StoreDriver {
	case "postgres":
		db, err := postgres.ConnectDB(postgres.Config{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			Username: cfg.PostgresUser,
			Password: cfg.PostgresPass,
			DbName:   cfg.PostgresDB,
			SslMode:  cfg.PostgresSSLMode,
		})
		if err != nil {
			logrus.Fatalf("postgres connect: %s", err)
		}
		defer func() {
			if derr := db.Close(); derr != nil {
				logrus.Errorf("db close: %v", derr)
			}
		}()
		if err := db.AutoMigrate(
			&models.Order{}, &models.Patient{}, &models.Defect{},
			&models.User{}, &models.Organization{}, &models.Product{},
		).Error; err != nil {
			logrus.Fatalf("migrate: %s", err)
		}
		repo = repository.NewPostgresRepository(db)
		logrus.Print("connected to postgres")
	default:
		repo = repository.NewMemoryRepository()
		logrus.Print("using in-memory store")
	}

	opts := []service.Option{
		service.WithEditWindow(cfg.EditWindow),
	}
	if cfg.StrictTransitions {
		opts = append(opts, service.WithStrictTransitions())
	}
	if cfg.PartnerBaseURL != "" {
		opts = append(opts, service.WithMirror(partner.NewClient(cfg.PartnerBaseURL, cfg.PartnerAPIKey)))
	}

	var pub *kafka.Publisher
	if cfg.KafkaEnabled {
		pub, err = kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaEventsTopic)
		if err != nil {
			logrus.Fatalf("kafka publisher: %s", err)
		}
		defer func() {
			if cerr := pub.Close(); cerr != nil {
				logrus.Errorf("publisher close: %v", cerr)
			}
		}()
		opts = append(opts, service.WithEvents(pub))
	}

	svc := service.NewService(repo, opts...)

	var wg sync.WaitGroup
	var consumer *kafka.Consumer
	if cfg.KafkaEnabled {
		consumer = kafka.NewConsumer(kafka.Config{
			Brokers: cfg.KafkaBrokersSlice(),
			GroupID: cfg.KafkaGroupID,
			Topic:   cfg.KafkaIntakeTopic,
			DLQ:     cfg.KafkaIntakeDLQ,
		}, svc)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Subscribe(ctx); err != nil {
				logrus.Errorf("consumer stopped: %v", err)
				cancel()
			}
		}()
		logrus.Print("partner intake subscription started")
	}

	h := httpdelivery.NewHandler(svc, cfg.ExportKey)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}

	// unblock the consumer before waiting on it
	cancel()
	if consumer != nil {
		if cerr := consumer.Close(context.Background()); cerr != nil {
			logrus.Errorf("kafka close: %v", cerr)
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}

	wg.Wait()
	logrus.Print("service stopped")
}
