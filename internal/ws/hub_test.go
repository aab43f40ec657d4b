package ws

import (
	"log/slog"
	"testing"
	"time"
)

func recv(t *testing.T, c *Client, name string) string {
	t.Helper()
	select {
	case got, ok := <-c.Send:
		if !ok {
			t.Fatalf("%s: canal fechado", name)
		}
		return string(got)
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting %s", name)
	}
	return ""
}

func nothing(t *testing.T, c *Client, name string) {
	t.Helper()
	select {
	case got := <-c.Send:
		t.Fatalf("%s não deveria receber, got %q", name, got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_Publish_FiltersByFuncionario(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	all := &Client{Send: make(chan []byte, 4)}
	e1 := &Client{FuncionarioID: "E1", Send: make(chan []byte, 4)}
	e2 := &Client{FuncionarioID: "E2", Send: make(chan []byte, 4)}
	h.Register(all)
	h.Register(e1)
	h.Register(e2)

	h.Publish(Event{FuncionarioID: "E1", Body: []byte("entrada E1")})

	if got := recv(t, all, "all"); got != "entrada E1" {
		t.Fatalf("all got %q", got)
	}
	if got := recv(t, e1, "e1"); got != "entrada E1" {
		t.Fatalf("e1 got %q", got)
	}
	nothing(t, e2, "e2")
}

func TestHub_Publish_UnfilteredClientsGetEverything(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{Send: make(chan []byte, 2)}
	h.Register(c1)

	h.Publish(Event{FuncionarioID: "E1", Body: []byte("a")})
	h.Publish(Event{FuncionarioID: "E2", Body: []byte("b")})

	if got := recv(t, c1, "c1"); got != "a" {
		t.Fatalf("c1 got %q", got)
	}
	if got := recv(t, c1, "c1"); got != "b" {
		t.Fatalf("c1 got %q", got)
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	slow := &Client{Send: make(chan []byte)} // sem buffer e ninguém lendo
	fast := &Client{Send: make(chan []byte, 4)}
	h.Register(slow)
	h.Register(fast)

	h.Publish(Event{FuncionarioID: "E1", Body: []byte("x")})
	recv(t, fast, "fast")

	deadline := time.Now().Add(time.Second)
	for h.Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("cliente lento não foi removido; total=%d", h.Count())
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := <-slow.Send; ok {
		t.Fatal("canal do cliente lento deveria estar fechado")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	defer h.Stop()

	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c)
	if c.ID == "" {
		t.Fatal("id não atribuído")
	}
	h.Unregister(c)

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("esperava canal fechado")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout")
	}
}

func TestHub_AfterStopDoesNotBlock(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c)
	h.Stop()

	done := make(chan struct{})
	go func() {
		h.Publish(Event{FuncionarioID: "E1", Body: []byte("tarde")})
		h.Unregister(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Publish/Unregister bloquearam depois de Stop")
	}
}
