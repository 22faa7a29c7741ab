package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/application/service"
	"github.com/clearbenefit/claims-engine/internal/config"
	"github.com/clearbenefit/claims-engine/internal/domain/attachment"
	"github.com/clearbenefit/claims-engine/internal/domain/costing"
	"github.com/clearbenefit/claims-engine/internal/domain/eligibility"
	httpadapter "github.com/clearbenefit/claims-engine/internal/interfaces/http"
	"github.com/clearbenefit/claims-engine/internal/notification"
	"github.com/clearbenefit/claims-engine/internal/repository"
	"github.com/clearbenefit/claims-engine/pkg/database"
	"github.com/clearbenefit/claims-engine/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting claims adjudication engine",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Repositories
	claimRepo := repository.NewClaimRepository(db, logger)
	lineRepo := repository.NewClaimLineRepository(db, logger)
	attachmentRepo := repository.NewAttachmentRepository(db, logger)
	auditRepo := repository.NewAuditRepository(db, logger)
	checkRepo := repository.NewEligibilityCheckRepository(db, logger)
	memberRepo := repository.NewMemberRepository(db, logger)

	// Domain components
	gate := attachment.NewGate(buildClassifier(cfg, logger))
	engine := costing.NewEngine()
	accumulator := costing.NewHistoryAccumulator(claimRepo)
	chain := eligibility.DefaultChain()

	notifier := buildNotifier(cfg, logger)

	serviceLogger := utils.NewZapAdapter(logger)

	claimService := service.NewClaimService(
		claimRepo,
		lineRepo,
		attachmentRepo,
		auditRepo,
		memberRepo,
		db,
		gate,
		engine,
		accumulator,
		notifier,
		serviceLogger,
	)
	eligibilityService := service.NewEligibilityService(
		chain,
		memberRepo,
		checkRepo,
		accumulator,
		serviceLogger,
	)

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		claimService,
		eligibilityService,
		serviceLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// buildClassifier selects the attachment classifier from configuration. The
// filename matcher is always the fallback.
func buildClassifier(cfg *config.Config, logger *zap.Logger) attachment.Classifier {
	keyword := attachment.NewKeywordClassifier()

	switch cfg.Adjudication.Classifier {
	case config.ClassifierContent:
		return attachment.NewContentClassifier(keyword, logger)
	case config.ClassifierAI:
		return attachment.NewAIClassifier(cfg.OpenAI.APIKey, cfg.OpenAI.Model, keyword, logger)
	default:
		return keyword
	}
}

// buildNotifier returns the Lark notifier when configured, otherwise a no-op
func buildNotifier(cfg *config.Config, logger *zap.Logger) port.DecisionNotifier {
	if !cfg.Lark.Enabled {
		return notification.NoopNotifier{}
	}
	return notification.NewLarkNotifier(notification.Config{
		Enabled:       cfg.Lark.Enabled,
		AppID:         cfg.Lark.AppID,
		AppSecret:     cfg.Lark.AppSecret,
		ReceiveIDType: cfg.Lark.ReceiveIDType,
		ReceiveID:     cfg.Lark.ReceiveID,
	}, logger)
}
