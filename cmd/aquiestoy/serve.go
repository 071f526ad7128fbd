package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aquiestoy/internal/cases"
	"aquiestoy/internal/db"
	"aquiestoy/internal/recognition"
	"aquiestoy/internal/server"
	"aquiestoy/internal/storage"
	"aquiestoy/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx, config)
	if err != nil {
		return err
	}

	s3Client := s3.NewFromConfig(awsConfig)
	rekognitionClient := rekognition.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	casesRepo := store.NewCaseRepository(pool)
	usersRepo := store.NewUserRepository(pool)
	categoriesRepo := store.NewCategoryRepository(pool)

	blobs := storage.NewS3Storage(
		s3Client,
		config.S3BucketName,
		config.AWSRegion,
		time.Duration(config.StorageTimeoutSec)*time.Second,
	)
	recognizer := recognition.New(rekognitionClient)

	caseFlow := cases.NewWorkflow(casesRepo, blobs, logger)

	srv, err := server.New(
		config,
		logger,
		caseFlow,
		usersRepo,
		categoriesRepo,
		blobs,
		recognizer,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
