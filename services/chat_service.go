package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"sync"
	"time"
)

// ChatConfig holds the connection settings for the external AI backend
// that does speech-to-text, the LLM round trip and speech synthesis.
type ChatConfig struct {
	BackendURL string
}

// ChatService proxies chat requests to the AI backend. The backend is an
// opaque collaborator; this service only moves bytes and headers.
type ChatService struct {
	config     *ChatConfig
	httpClient *http.Client
}

var (
	chatService *ChatService
	chatOnce    sync.Once
)

// GetChatService returns the singleton ChatService instance.
func GetChatService() *ChatService {
	chatOnce.Do(func() {
		backendURL := os.Getenv("CHAT_BACKEND_URL")
		if backendURL == "" {
			backendURL = "http://localhost:8000"
		}

		chatService = &ChatService{
			config: &ChatConfig{
				BackendURL: backendURL,
			},
			httpClient: &http.Client{
				// transcription + LLM + synthesis can take a while
				Timeout: 60 * time.Second,
			},
		}
	})
	return chatService
}

// ValidateConfig validates the chat backend configuration.
func (cs *ChatService) ValidateConfig() error {
	if cs.config.BackendURL == "" {
		return fmt.Errorf("CHAT_BACKEND_URL is not set")
	}
	return nil
}

// ChatAudioResponse carries the synthesized reply. ResponseText is the
// transcript exactly as the backend sent it: base64 encoded, ready to be
// passed through in the X-Response-Text header.
type ChatAudioResponse struct {
	Audio        []byte
	ContentType  string
	ResponseText string
}

// Converse forwards a recorded question to the backend /chat endpoint as
// a multipart upload and returns the synthesized audio reply.
func (cs *ChatService) Converse(audioPath, filename, contentType string) (*ChatAudioResponse, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio_file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, cs.config.BackendURL+"/chat", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := cs.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat backend returned status %d: %s", resp.StatusCode, string(body))
	}

	audioType := resp.Header.Get("Content-Type")
	if audioType == "" {
		audioType = "audio/mpeg"
	}

	return &ChatAudioResponse{
		Audio:        body,
		ContentType:  audioType,
		ResponseText: resp.Header.Get("X-Response-Text"),
	}, nil
}

// Ask sends a plain text question to the backend /chatText endpoint and
// returns the response text.
func (cs *ChatService) Ask(question string) (string, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return "", err
	}

	resp, err := cs.httpClient.Post(cs.config.BackendURL+"/chatText", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat backend returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		ResponseText string `json:"response_text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding chat backend response: %w", err)
	}

	return parsed.ResponseText, nil
}
