package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridvoice/gridvoice/internal/api/handlers"
	"github.com/gridvoice/gridvoice/internal/bot"
	"github.com/gridvoice/gridvoice/internal/config"
	"github.com/gridvoice/gridvoice/internal/energy"
	"github.com/gridvoice/gridvoice/internal/jobs"
	"github.com/gridvoice/gridvoice/internal/server"
	"github.com/gridvoice/gridvoice/internal/speech"
	"github.com/gridvoice/gridvoice/internal/storage"
	"github.com/gridvoice/gridvoice/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the gridvoice API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().String("faq", "", "Path to the FAQ catalog (overrides GRIDVOICE_FAQ_PATH)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetString("port")
	}
	if faqFlag, _ := cmd.Flags().GetString("faq"); faqFlag != "" {
		cfg.FAQPath = faqFlag
	}

	kb := bot.LoadKnowledgeBase(cfg.FAQPath)
	log.Printf("knowledge base loaded: %d entries", kb.Len())

	contact := bot.Contact{
		Phone:     cfg.SupportPhone,
		Email:     cfg.SupportEmail,
		Emergency: cfg.EmergencyPhone,
	}

	engine, err := bot.NewEngine(bot.EngineConfig{
		Knowledge: kb,
		Intents:   bot.DefaultIntents(contact),
	})
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	calc := energy.NewCalculator(energy.Tariffs{
		ResidentialDay:   cfg.TariffResidentialDay,
		ResidentialNight: cfg.TariffResidentialNight,
		Commercial:       cfg.TariffCommercial,
		Industrial:       cfg.TariffIndustrial,
	})

	var speechClient *speech.Client
	if cfg.HasSpeech() {
		speechClient = speech.NewClient(cfg.SpeechKey, cfg.SpeechRegion,
			speech.WithVoice(cfg.SpeechVoice),
			speech.WithLanguage(cfg.SpeechLanguage),
		)
		log.Printf("speech service configured (region: %s, voice: %s)", cfg.SpeechRegion, cfg.SpeechVoice)
	} else {
		log.Println("speech service not configured, speech endpoints disabled")
	}

	var archiver *jobs.ReportArchiver
	var archiveWorker *jobs.Worker
	if cfg.HasS3() {
		archive, err := storage.NewArchive(ctx, storage.ArchiveConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create report archive: %w", err)
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure archive bucket: %w", err)
		}
		log.Printf("report archive bucket '%s' ready", cfg.S3Bucket)

		archiver = jobs.NewReportArchiver(engine, archive)
		if cfg.ReportArchiveHours > 0 {
			archiveWorker = jobs.NewWorker(archiver, time.Duration(cfg.ReportArchiveHours)*time.Hour)
			go archiveWorker.Start(ctx)
			log.Printf("report archiver started (every %dh)", cfg.ReportArchiveHours)
		}
	} else {
		log.Println("object storage not configured, report archiving disabled")
	}

	var statsHandler *handlers.StatsHandler
	if archiver != nil {
		statsHandler = handlers.NewStatsHandler(engine, archiver)
	} else {
		statsHandler = handlers.NewStatsHandler(engine, nil)
	}

	var speechHandler *handlers.SpeechHandler
	if speechClient != nil {
		speechHandler = handlers.NewSpeechHandler(speechClient)
	} else {
		speechHandler = handlers.NewSpeechHandler(nil)
	}

	router := server.NewRouter(server.RouterConfig{
		ChatHandler:   handlers.NewChatHandler(engine),
		StatsHandler:  statsHandler,
		EnergyHandler: handlers.NewEnergyHandler(calc),
		SpeechHandler: speechHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if archiveWorker != nil {
		archiveWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
