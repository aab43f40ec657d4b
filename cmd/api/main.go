package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/admin"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/broker"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/config"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/db"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/handlers"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/repository"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/security"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/services"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/utils"
)

// cmd/api/main.go
func main() {
	cfg := config.Load() // .env

	log := config.InitLogger(cfg.LogLevel)
	log.Info("starting", "port", cfg.Port, "mongo_db", cfg.MongoDB, "page_size", cfg.PageSize, "tz", cfg.Location.String())

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()

	client, err := db.NewMongoClientWithTimeout(cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Error("mongo_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	database := client.Database(cfg.MongoDB)

	empresas := repository.NewCompanyRepository(database)
	funcionarios := repository.NewFuncionarioRepository(database)
	lancamentos := repository.NewLancamentoRepository(database)

	if err := ensureIndexes(database, empresas, funcionarios, lancamentos); err != nil {
		log.Error("mongo_indexes_error", "err", err)
		os.Exit(1)
	}

	if *task != "" {
		switch *task {
		case "seed":
			s := &admin.Seeder{
				Empresas:     empresas,
				Funcionarios: funcionarios,
				Hasher:       utils.NewBCryptHasher(cfg.BcryptCost),
				Log:          log.With("task", "seed"),
			}
			if err := s.SeedEmpresa(context.Background()); err != nil {
				log.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			return // encerra o processo sem subir HTTP
		default:
			log.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	// publisher (Rabbit)
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		log.Error("rabbitmq_connect_error", "err", err)
		os.Exit(1)
	}
	defer pub.Close()

	authz, err := security.NewAuthorizer(log)
	if err != nil {
		log.Error("rbac_init_error", "err", err)
		os.Exit(1)
	}

	svc := services.NewLancamentoService(lancamentos, funcionarios, cfg.PageSize, cfg.Location, log)

	router := handlers.NewRouter(handlers.RouterDeps{
		Lancamentos:  handlers.NewLancamentoHandler(svc, pub, log, cfg.RequestTimeout),
		Empresas:     handlers.NewEmpresaHandler(empresas, log),
		Funcionarios: security.SharedLookups(funcionarios),
		Authz:        authz,
		AuthHeader:   cfg.AuthHeader,
		Log:          log,

		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info("api_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	log.Info("stopped")
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func ensureIndexes(database *mongo.Database, repos ...indexer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	slog.Info("mongo_indexes_ready", "db", database.Name())
	return nil
}
