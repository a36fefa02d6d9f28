package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"faq-bot/handler"
	"faq-bot/internal/catalog"
	"faq-bot/internal/domain"
	"faq-bot/internal/integrations/paramstore"
	"faq-bot/internal/matcher"
	"faq-bot/internal/metrics"
	"faq-bot/internal/repository"
	"faq-bot/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// ---- Configuration (read only here) ----
	runtime := envString("RUNTIME", "lambda")
	httpAddr := envString("HTTP_ADDR", ":8080")
	catalogPath := envString("CATALOG_PATH", "FAQs.json")
	catalogParam := strings.TrimSpace(os.Getenv("CATALOG_PARAM"))
	catalogWatch := envBool("CATALOG_WATCH", false)
	stateBackend := envString("STATE_BACKEND", "memory")
	conversationTTL := envDuration("CONVERSATION_TTL", 24*time.Hour)
	maxMessageLen := envInt("MAX_MESSAGE_LENGTH", 500)
	thresholds := matcher.Thresholds{
		Direct:  envFloat("DIRECT_MATCH_THRESHOLD", matcher.DefaultDirectThreshold),
		Suggest: envFloat("SUGGEST_THRESHOLD", matcher.DefaultSuggestThreshold),
	}

	// ---- AWS SDK config (only when an AWS-backed component is used) ----
	var awsCfg aws.Config
	if catalogParam != "" || stateBackend == "dynamodb" {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			slog.Error("failed to load AWS config", "err", err)
			os.Exit(1)
		}
		awsCfg = cfg
	}

	// ---- Catalog ----
	source := catalog.FileSource(catalogPath)
	if catalogParam != "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		source = catalog.ParamSource(ssmClient, catalogParam)
	}
	faqs := catalog.Load(ctx, logger, source)

	collector := metrics.NewCollector()
	collector.SetCatalogSize(len(faqs))

	// ---- Conversation state ----
	state, closeState, err := newStateStore(ctx, stateBackend, awsCfg, conversationTTL)
	if err != nil {
		slog.Error("failed to create state store", "backend", stateBackend, "err", err)
		os.Exit(1)
	}
	defer closeState()

	chatService, err := usecase.NewChatService(matcher.New(faqs, thresholds), state, usecase.WithRecorder(collector))
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService,
		handler.WithLogger(logger),
		handler.WithMaxMessageLength(maxMessageLen),
		handler.WithStatusRecorder(collector),
	)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	switch runtime {
	case "lambda":
		lambda.StartWithOptions(h.Handle, lambda.WithContext(ctx))
	case "http":
		if catalogWatch && catalogParam == "" {
			err := catalog.Watch(ctx, logger, catalogPath, func(faqs []domain.FAQ) {
				chatService.SwapMatcher(matcher.New(faqs, thresholds))
				collector.SetCatalogSize(len(faqs))
			})
			if err != nil {
				slog.Warn("catalog watch disabled", "path", catalogPath, "err", err)
			}
		}
		if err := serveHTTP(ctx, httpAddr, handler.NewRouter(h, collector.Registry)); err != nil {
			slog.Error("http server failed", "err", err)
			os.Exit(1)
		}
	default:
		slog.Error("unknown RUNTIME", "runtime", runtime)
		os.Exit(1)
	}
}

func newStateStore(ctx context.Context, backend string, awsCfg aws.Config, ttl time.Duration) (usecase.StateStore, func(), error) {
	noop := func() {}
	switch backend {
	case "memory":
		return repository.NewMemoryStore(0), noop, nil
	case "dynamodb":
		store, err := repository.NewDynamoStore(awsdynamodb.NewFromConfig(awsCfg), mustEnv("STATE_TABLE"), ttl)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case "redis":
		store, client, err := repository.DialRedis(ctx, repository.RedisConfig{
			Addr:     envString("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
			Prefix:   os.Getenv("REDIS_PREFIX"),
			TTL:      ttl,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = client.Close() }, nil
	default:
		return nil, noop, errors.New("unknown STATE_BACKEND " + strconv.Quote(backend))
	}
}

func serveHTTP(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
