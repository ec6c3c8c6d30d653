package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dylanratti/grain/internal/config"
)

func testConfig(baseURL string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Chat.APIKey = "sk-test"
	cfg.Chat.BaseURL = baseURL
	return cfg
}

// completionServer stands in for the completion API.
func completionServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func replyWith(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestNewClientWithoutCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewClient(config.DefaultConfig())
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("NewClient err = %v, want ErrNoCredential", err)
	}
}

func TestAskReturnsReply(t *testing.T) {
	srv := completionServer(t, replyWith("Trim dining by $44/mo."))

	c, err := NewClient(testConfig(srv.URL + "/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	reply, err := c.Ask(context.Background(),
		[]Message{{Role: "user", Text: "where can I save?"}},
		"Leftover after spend: $735")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "Trim dining by $44/mo." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestAskTrimsWhitespace(t *testing.T) {
	srv := completionServer(t, replyWith("\n  Pay the Visa first.  \n"))

	c, err := NewClient(testConfig(srv.URL + "/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	reply, err := c.Ask(context.Background(), []Message{{Role: "user", Text: "priorities?"}}, "")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply != "Pay the Visa first." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestAskEmptyChoices(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	c, err := NewClient(testConfig(srv.URL + "/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Ask(context.Background(), []Message{{Role: "user", Text: "hi"}}, "")
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("Ask err = %v, want ErrEmptyReply", err)
	}
}

func TestAskBlankContent(t *testing.T) {
	srv := completionServer(t, replyWith("   \n\t"))

	c, err := NewClient(testConfig(srv.URL + "/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Ask(context.Background(), []Message{{Role: "user", Text: "hi"}}, "")
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("Ask err = %v, want ErrEmptyReply", err)
	}
}

func TestAskUpstreamFailure(t *testing.T) {
	srv := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	})

	c, err := NewClient(testConfig(srv.URL + "/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Ask(context.Background(), []Message{{Role: "user", Text: "hi"}}, "")
	if err == nil {
		t.Fatal("Ask err = nil, want an upstream error")
	}
	if errors.Is(err, ErrEmptyReply) || errors.Is(err, ErrNoCredential) {
		t.Fatalf("Ask err = %v, want a plain upstream error", err)
	}
}

func TestAskSendsSnapshotInSystemPrompt(t *testing.T) {
	var gotSystem string
	srv := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 && req.Messages[0].Role == "system" {
			gotSystem = req.Messages[0].Content
		}
		replyWith("ok")(w, r)
	})

	c, err := NewClient(testConfig(srv.URL + "/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.Ask(context.Background(),
		[]Message{{Role: "user", Text: "hi"}},
		"Leftover after spend: $735"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if gotSystem == "" {
		t.Fatal("no system message relayed")
	}
	if want := "Leftover after spend: $735"; !strings.Contains(gotSystem, want) {
		t.Fatalf("system prompt %q missing snapshot %q", gotSystem, want)
	}
}
