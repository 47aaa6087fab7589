package services

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestChatService(backendURL string) *ChatService {
	return &ChatService{
		config:     &ChatConfig{BackendURL: backendURL},
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestChatService_ValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  *ChatConfig
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  &ChatConfig{BackendURL: "http://localhost:8000"},
			wantErr: false,
		},
		{
			name:    "missing backend url",
			config:  &ChatConfig{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &ChatService{config: tt.config}
			err := cs.ValidateConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestChatService_Ask(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chatText" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response_text": "We open at nine."}`))
	}))
	defer backend.Close()

	cs := newTestChatService(backend.URL)
	got, err := cs.Ask("When do you open?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "We open at nine." {
		t.Errorf("Ask() = %q", got)
	}
}

func TestChatService_AskBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "model unavailable"}`, http.StatusInternalServerError)
	}))
	defer backend.Close()

	cs := newTestChatService(backend.URL)
	if _, err := cs.Ask("hello"); err == nil {
		t.Fatal("Ask() expected error on backend failure")
	}
}

func TestChatService_Converse(t *testing.T) {
	transcript := base64.StdEncoding.EncodeToString([]byte("table for two"))
	audio := []byte("mp3-bytes")

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("audio_file")
		if err != nil {
			t.Errorf("missing audio_file part: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "question.wav" {
			t.Errorf("unexpected filename %s", header.Filename)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("X-Response-Text", transcript)
		w.Write(audio)
	}))
	defer backend.Close()

	tmp := filepath.Join(t.TempDir(), "question.wav")
	if err := os.WriteFile(tmp, []byte("riff-data"), 0644); err != nil {
		t.Fatal(err)
	}

	cs := newTestChatService(backend.URL)
	reply, err := cs.Converse(tmp, "question.wav", "audio/wav")
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if string(reply.Audio) != string(audio) {
		t.Errorf("Converse() audio = %q", reply.Audio)
	}
	if reply.ContentType != "audio/mpeg" {
		t.Errorf("Converse() content type = %q", reply.ContentType)
	}
	if reply.ResponseText != transcript {
		t.Errorf("Converse() transcript header = %q, want %q", reply.ResponseText, transcript)
	}
}
