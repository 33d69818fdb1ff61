package httpserver

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	s := New(":9121", http.NotFoundHandler())
	if s == nil {
		t.Fatal("New returned nil")
	}
	if s.httpServer == nil {
		t.Error("httpServer is nil")
	}
	if s.handler == nil {
		t.Error("handler is nil")
	}
	if s.Addr() != nil {
		t.Error("Addr should be nil before Listen")
	}
}

func TestServer_Serve(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("roar_up 1\n"))
	})

	s := New("127.0.0.1:0", metrics)
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve()
	}()

	base := "http://" + s.Addr().String()
	for path, want := range map[string]string{"/metrics": "roar_up 1\n", "/health": "OK"} {
		resp, err := http.Get(base + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if string(body) != want {
			t.Errorf("GET %s = %q, want %q", path, body, want)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown error: %v", err)
	}

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Serve returned unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for Serve to return")
	}
}

func TestServer_ServeBeforeListen(t *testing.T) {
	s := New("127.0.0.1:0", http.NotFoundHandler())
	if err := s.Serve(); err == nil {
		t.Error("Serve before Listen should fail")
	}
}

func TestServer_ListenConflict(t *testing.T) {
	a := New("127.0.0.1:0", http.NotFoundHandler())
	if err := a.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer a.ln.Close()

	b := New(a.Addr().String(), http.NotFoundHandler())
	if err := b.Listen(); err == nil {
		t.Error("second Listen on the same address should fail")
	}
}
