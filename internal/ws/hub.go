// Package ws distribui os eventos de lançamento para os clientes websocket conectados.
package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Client recebe os eventos em Send. FuncionarioID vazio = assina todos os funcionários.
type Client struct {
	ID            string
	FuncionarioID string
	Send          chan []byte
}

func (c *Client) wants(ev Event) bool {
	return c.FuncionarioID == "" || c.FuncionarioID == ev.FuncionarioID
}

type Event struct {
	FuncionarioID string
	Body          []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client
	events   chan Event

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		events:   make(chan Event, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	return fmt.Sprintf("c%d", h.nextID.Add(1))
}

// Run é o único que escreve no mapa de clientes; roda numa goroutine própria.
func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "funcionario_id", c.FuncionarioID, "total", total)

		case c := <-h.unreg:
			if c == nil {
				continue
			}
			h.remove(c.ID)
			h.log.Info("client_unregistered", "id", c.ID, "total", h.Count())

		case ev := <-h.events:
			h.dispatch(ev)

		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

func (h *Hub) dispatch(ev Event) {
	var slow []string

	h.mu.RLock()
	for id, c := range h.clients {
		if !c.wants(ev) {
			continue
		}
		select {
		case c.Send <- ev.Body:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	// cliente lento -> desconecta para não travar o hub
	for _, id := range slow {
		h.remove(id)
		h.log.Warn("client_dropped_slow", "id", id)
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) Register(c *Client) {
	if c.ID == "" {
		c.ID = h.newID()
	}
	select {
	case h.register <- c:
	case <-h.stop:
	}
}

// Unregister e Publish também não bloqueiam depois de Stop.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stop:
	}
}

func (h *Hub) Publish(ev Event) {
	select {
	case h.events <- ev:
	case <-h.stop:
	}
}
