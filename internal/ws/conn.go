package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

type ConnOptions struct {
	WriteWait  time.Duration
	PongWait   time.Duration
	PingPeriod time.Duration // precisa ser menor que PongWait
}

func DefaultConnOptions() ConnOptions {
	return ConnOptions{
		WriteWait:  10 * time.Second,
		PongWait:   60 * time.Second,
		PingPeriod: 54 * time.Second,
	}
}

// ServeConn registra o cliente e sobe as goroutines de escrita e leitura da conexão.
// Retorna logo; a conexão é fechada quando qualquer um dos lados cai.
func ServeConn(hub *Hub, conn *websocket.Conn, client *Client, opt ConnOptions) {
	hub.Register(client)
	go writePump(conn, client, opt)
	go readPump(hub, conn, client, opt)
}

// eventos do hub + ping periódico (o pong do cliente renova o read deadline)
func writePump(conn *websocket.Conn, client *Client, opt ConnOptions) {
	ticker := time.NewTicker(opt.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(opt.WriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(opt.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// só detecta o fechamento; o cliente não envia nada de útil
func readPump(hub *Hub, conn *websocket.Conn, client *Client, opt ConnOptions) {
	defer func() {
		hub.Unregister(client)
		_ = conn.Close()
	}()
	_ = conn.SetReadDeadline(time.Now().Add(opt.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(opt.PongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
