package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agendo-app/agendo/internal/availability"
	"github.com/agendo-app/agendo/internal/consumer"
	"github.com/agendo-app/agendo/internal/handlers"
	"github.com/agendo-app/agendo/internal/inbox"
	"github.com/agendo-app/agendo/internal/outbox"
	"github.com/agendo-app/agendo/internal/provider"
	"github.com/agendo-app/agendo/internal/storage"
	"github.com/agendo-app/agendo/internal/suggest"
	"github.com/agendo-app/agendo/libs/config"
	"github.com/agendo-app/agendo/libs/db"
	"github.com/agendo-app/agendo/libs/httpx"
	"github.com/agendo-app/agendo/libs/kafkax"
	otelx "github.com/agendo-app/agendo/libs/otel"
	"github.com/agendo-app/agendo/libs/runtime"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "scheduling-service")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL, db.DefaultOptions())
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer rdb.Close()
	}

	providerClient, restClient := buildProviderClient(logger)
	var cachedClient *provider.CachedClient
	if rdb != nil {
		cachedClient = provider.NewCachedClient(providerClient, rdb, config.Duration("PROVIDER_CACHE_TTL", 2*time.Minute), logger)
		providerClient = cachedClient
	}
	checker := provider.NewConflictChecker(providerClient, logger)

	catalogRepo := storage.NewCatalogRepository(pool)
	apptRepo := storage.NewAppointmentRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	engine := availability.NewEngine(catalogRepo, checker, logger)
	suggester := suggest.NewEngine(catalogRepo, checker, logger)

	availabilityHandler := handlers.NewAvailabilityHandler(engine, suggester, logger)
	appointmentHandler := handlers.NewAppointmentHandler(apptRepo, outboxRepo, engine, logger)

	brokers := config.String("KAFKA_BROKERS", "")
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   brokers,
		PollEvery: config.Duration("OUTBOX_POLL_INTERVAL", 2*time.Second),
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go outboxPublisher.Run(ctx)

	consumeTopic := config.String("KAFKA_CONSUME_TOPIC", "calendarprovider.calendar.changed.v1")
	if brokers != "" && consumeTopic != "" {
		inboxRepo := inbox.NewRepository(pool)
		eventConsumer := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: brokers,
			GroupID: config.String("KAFKA_GROUP_ID", service),
			Topic:   consumeTopic,
		}, func(ctx context.Context, msg kafka.Message) error {
			var payload struct {
				ExternalCalendarID string `json:"external_calendar_id"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
				return nil
			}
			if payload.ExternalCalendarID == "" {
				logger.Error("missing external_calendar_id", "topic", msg.Topic)
				return nil
			}
			if cachedClient == nil {
				return nil
			}
			return cachedClient.Invalidate(ctx, payload.ExternalCalendarID)
		})
		go eventConsumer.Run(ctx)
	}

	readyChecks := []runtime.ReadyCheck{
		{Name: "db", Check: db.ReadyCheck(pool)},
	}
	if rdb != nil {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "redis", Check: provider.RedisReadyCheck(rdb)})
	}
	if brokers != "" {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}
	if restClient != nil {
		readyChecks = append(readyChecks, runtime.ReadyCheck{Name: "provider", Check: restClient.ReadyCheck()})
	}
	mux := runtime.NewBaseMuxWithReady(readyChecks...)

	var suggestLimit httpx.Middleware
	if rdb != nil {
		suggestLimit = httpx.NewRedisRateLimiter(rdb, config.Int("SUGGEST_RATE_LIMIT", 60), time.Minute, "suggest").Middleware(logger, true)
	} else {
		suggestLimit = httpx.NewRateLimiter(config.Int("SUGGEST_RATE_LIMIT", 60), time.Minute).Middleware()
	}
	apiKey := httpx.WithAPIKey(config.String("API_KEY_HASH", ""))

	mux.HandleFunc("/api/v1/availability/check", availabilityHandler.Check)
	mux.HandleFunc("/api/v1/availability/check-calendars", availabilityHandler.CheckCalendars)
	mux.Handle("/api/v1/availability/suggest", suggestLimit(http.HandlerFunc(availabilityHandler.Suggest)))
	mux.Handle("/api/v1/appointments", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			appointmentHandler.List(w, r)
			return
		}
		apiKey(http.HandlerFunc(appointmentHandler.Create)).ServeHTTP(w, r)
	}))
	mux.Handle("/api/v1/appointments/cancel", apiKey(http.HandlerFunc(appointmentHandler.Cancel)))
	mux.Handle("/api/v1/appointments/complete", apiKey(http.HandlerFunc(appointmentHandler.Complete)))

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithCORS(corsFromEnv()),
		httpx.WithBodyLimit(1<<20),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "scheduling")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// buildProviderClient prefers the gRPC transport when a build with generated
// stubs is deployed, otherwise falls back to the REST client. The second
// return value is non-nil only for the REST path and feeds /readyz.
func buildProviderClient(logger *slog.Logger) (provider.Client, *provider.RESTClient) {
	if addr := config.String("CALENDAR_PROVIDER_GRPC_ADDR", ""); addr != "" {
		client, err := provider.NewGRPCClient(addr)
		if err != nil {
			logger.Error("provider grpc client init failed; falling back to rest", "err", err)
		} else if client != nil {
			logger.Info("using grpc calendar provider", "addr", addr)
			return client, nil
		}
	}

	baseURL := config.String("CALENDAR_PROVIDER_URL", "http://localhost:9090")
	token := config.String("CALENDAR_PROVIDER_TOKEN", "")
	rest := provider.NewRESTClient(baseURL, token, config.Duration("CALENDAR_PROVIDER_TIMEOUT", 5*time.Second))
	return rest, rest
}

func corsFromEnv() httpx.CORSPolicy {
	origins := strings.Split(config.String("CORS_ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return httpx.CORSPolicy{
		AllowedOrigins: origins,
		MaxAge:         10 * time.Minute,
	}
}
