package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/dkovchenko/conference-assistant/pkg/api"
	"github.com/dkovchenko/conference-assistant/pkg/auth"
	"github.com/dkovchenko/conference-assistant/pkg/converter"
	"github.com/dkovchenko/conference-assistant/pkg/database"
	"github.com/dkovchenko/conference-assistant/pkg/digitalocean"
	"github.com/dkovchenko/conference-assistant/pkg/logger"
	"github.com/dkovchenko/conference-assistant/pkg/openai"
	"github.com/dkovchenko/conference-assistant/pkg/repository"
	"github.com/dkovchenko/conference-assistant/pkg/services"
	"github.com/dkovchenko/conference-assistant/pkg/tools"
	"github.com/dkovchenko/conference-assistant/pkg/workers"
)

type Config struct {
	OpenAIToken string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	TTSModel  string `env:"TTS_MODEL" envDefault:"tts-1"`
	TTSVoice  string `env:"TTS_VOICE" envDefault:"alloy"`
	TTSFormat string `env:"TTS_FORMAT" envDefault:"mp3"`

	PgURL  string `env:"DATABASE_URL"`
	PgHost string `env:"DB_HOST" envDefault:"localhost:5432"`

	HTTPAddr           string   `env:"HTTP_ADDR" envDefault:":8000"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:" " envDefault:"http://localhost:3000 http://localhost:3001"`

	ConversationTTL time.Duration `env:"CONVERSATION_TTL" envDefault:"30m"`
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"5m"`

	ConferenceName string `env:"CONFERENCE_NAME" envDefault:"Business Conference 2025"`

	AdminTokens       []string `env:"ADMIN_TOKENS" envSeparator:" "`
	DigitalOceanToken string   `env:"DO_TOKEN"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	db, err := database.NewPostgres(cfg.PgURL, cfg.PgHost)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	userRepository := repository.NewUserRepository(db)
	businessRepository := repository.NewBusinessRepository(db)
	scheduleRepository := repository.NewScheduleRepository(db)
	organizationRepository := repository.NewOrganizationRepository(db)
	conversationRepository := repository.NewConversationRepository(cfg.ConversationTTL)

	toolFunctions := []services.ToolFunction{
		tools.NewGetConferenceSchedule(scheduleRepository),
		tools.NewSearchAttendees(userRepository),
		tools.NewSearchBusinesses(businessRepository),
		tools.NewGetUserBusinesses(businessRepository, userRepository),
		tools.NewAddBusiness(businessRepository),
		tools.NewDisplayBusinessForm(),
		tools.NewGetOrganizationInfo(organizationRepository),
	}

	toolService, err := services.NewToolService(toolFunctions)
	if err != nil {
		return nil, fmt.Errorf("creating tool service: %w", err)
	}

	eventStream := services.NewEventStream()

	var completer services.Completer
	var transcriber services.Transcriber
	var synthesizer services.SpeechSynthesizer
	if cfg.OpenAIToken != "" {
		openAIClient, err := openai.NewClient(cfg.OpenAIToken, openai.SpeechConfig{
			Model:  cfg.TTSModel,
			Voice:  cfg.TTSVoice,
			Format: cfg.TTSFormat,
		})
		if err != nil {
			return nil, fmt.Errorf("creating open ai client: %w", err)
		}
		completer = openAIClient
		transcriber = openAIClient
		synthesizer = openAIClient
	} else {
		slog.Warn("OPENAI_API_KEY is not set, using canned responses and disabling voice")
	}

	chatService := services.NewChatService(
		conversationRepository,
		userRepository,
		completer,
		toolService,
		eventStream,
		cfg.OpenAIModel,
		cfg.ConferenceName,
	)

	apiCfg := api.Config{
		ConferenceName: cfg.ConferenceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Chat:           chatService,
		Events:         eventStream,
		Users:          userRepository,
	}

	if transcriber != nil {
		apiCfg.Voice = services.NewVoiceService(
			&converter.AudioToMP3{},
			transcriber,
			synthesizer,
			chatService,
		)
	}

	if cfg.DigitalOceanToken != "" && len(cfg.AdminTokens) > 0 {
		apiCfg.Balance = digitalocean.NewClient(cfg.DigitalOceanToken)
		apiCfg.AdminAuth = auth.NewAuthenticator(cfg.AdminTokens)
	}

	return workers.Group{
		workers.NewHTTPServer(cfg.HTTPAddr, api.NewRouter(apiCfg)),
		workers.NewConversationJanitor(conversationRepository, cfg.JanitorInterval),
	}, nil
}
