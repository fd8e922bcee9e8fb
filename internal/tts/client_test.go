package tts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Synthesize(t *testing.T) {
	wavBytes := []byte("RIFF-fake-wav-payload")

	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write(wavBytes)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	audio, err := client.Synthesize(context.Background(), "Hello world.")
	if err != nil {
		t.Fatalf("Synthesize() failed: %v", err)
	}

	if string(audio) != string(wavBytes) {
		t.Errorf("Expected backend body returned verbatim, got %q", audio)
	}
	if gotBody != "Hello world." {
		t.Errorf("Expected sentence as raw POST body, got %q", gotBody)
	}
}

func TestClient_Synthesize_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Synthesize(context.Background(), "Goodbye now.")
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}

	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("Expected SynthesisError, got %T", err)
	}
	if synthErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500 in error, got %d", synthErr.StatusCode)
	}
	if synthErr.Sentence != "Goodbye now." {
		t.Errorf("Expected offending sentence in error, got %q", synthErr.Sentence)
	}
}

func TestClient_Synthesize_ConnectionRefused(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 2*time.Second)
	_, err := client.Synthesize(context.Background(), "Hello.")
	if err == nil {
		t.Fatal("Expected error when backend is unreachable")
	}

	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("Expected SynthesisError, got %T", err)
	}
}

func TestClient_Synthesize_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)
	_, err := client.Synthesize(context.Background(), "Slow sentence.")
	if err == nil {
		t.Fatal("Expected timeout error")
	}

	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("Expected SynthesisError, got %T", err)
	}
}

func TestClient_Synthesize_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Synthesize(ctx, "Canceled sentence.")
	if err == nil {
		t.Fatal("Expected error for canceled context")
	}
}
