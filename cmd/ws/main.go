package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/broker"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/config"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/handlers"
	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Ajuste CORS conforme necessário
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	wscfg := config.LoadWSConfig()

	log := config.InitLogger(wscfg.LogLevel).With("svc", "ws")
	hub := ws.NewHub(log)
	go hub.Run()

	cons, err := broker.NewConsumer(wscfg.RabbitURI, wscfg.RabbitQueue, "ws-consumer", wscfg.ConsumerPrefetch)
	if err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = cons.Close() }()
	log.Info("rabbit_consumer_started", "queue", wscfg.RabbitQueue)

	// encaminha os eventos do Rabbit para o hub, com o funcionário do header
	go func() {
		for d := range cons.Deliveries {
			hub.Publish(ws.Event{
				FuncionarioID: broker.HeaderString(d.Headers, "funcionario_id"),
				Body:          d.Body,
			})
		}
		log.Warn("deliveries_channel_closed")
	}()

	// HTTP: /ws[?funcionarioId=] e /healthz
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWS(hub, w, r, log)
	})
	mux.HandleFunc("/healthz", handlers.Health)

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           logMiddleware(mux, log),
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	hub.Stop()

	log.Info("stopped")
}

func handleWS(hub *ws.Hub, w http.ResponseWriter, r *http.Request, log *slog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("ws_upgrade_error", "err", err)
		return
	}

	// sem funcionarioId o cliente recebe os lançamentos de todos
	client := &ws.Client{
		FuncionarioID: strings.TrimSpace(r.URL.Query().Get("funcionarioId")),
		Send:          make(chan []byte, 256),
	}
	ws.ServeConn(hub, conn, client, ws.DefaultConnOptions())
	log.Info("ws_client_connected", "id", client.ID, "funcionario_id", client.FuncionarioID)
}

// upgrade de websocket não pode ter o ResponseWriter embrulhado (perde o Hijacker)
func logMiddleware(next http.Handler, log *slog.Logger) http.Handler {
	logged := handlers.Logging(log)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") || r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}
		logged.ServeHTTP(w, r)
	})
}
