package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeServer struct {
	mu       sync.Mutex
	bodies   []map[string]any
	models   []string
	text     string
	noChoice bool
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/completions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		f.mu.Lock()
		f.bodies = append(f.bodies, body)
		f.mu.Unlock()

		choices := []map[string]any{{
			"index":         0,
			"text":          f.text,
			"finish_reason": "length",
			"logprobs":      nil,
		}}
		if f.noChoice {
			choices = []map[string]any{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "text_completion",
			"created": 0,
			"model":   body["model"],
			"choices": choices,
			"usage":   map[string]any{"prompt_tokens": 9, "completion_tokens": 4, "total_tokens": 13},
		})
	})
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		data := make([]map[string]any, 0, len(f.models))
		for _, id := range f.models {
			data = append(data, map[string]any{"id": id, "object": "model", "created": 0, "owned_by": "local"})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	})
	return mux
}

func newTestEngine(t *testing.T, f *fakeServer, spec ModelSpec) *OpenAIEngine {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	eng, err := NewOpenAIEngine(&Settings{APIKey: "test", BaseURL: srv.URL + "/v1", MaxRetries: 0}, spec, srv.Client())
	if err != nil {
		t.Fatalf("NewOpenAIEngine: %v", err)
	}
	return eng
}

func TestOpenAIGenerate(t *testing.T) {
	f := &fakeServer{text: " a sentence.<|endoftext|>"}
	eng := newTestEngine(t, f, ModelSpec{Name: "deepseek-ai/deepseek-coder-1.3b", Device: DeviceCPU, DType: DTypeFloat32})

	temp := 0.2
	c, err := eng.Generate(context.Background(), "Hello, DeepSeek!", Options{MaxNewTokens: 50, Temperature: &temp, Stop: []string{"\n\n"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if c.Text != " a sentence.<|endoftext|>" {
		t.Fatalf("text = %q", c.Text)
	}
	if c.FinishReason != "length" || c.PromptTokens != 9 || c.CompletionTokens != 4 {
		t.Fatalf("unexpected completion %+v", c)
	}

	if len(f.bodies) != 1 {
		t.Fatalf("expected 1 request, got %d", len(f.bodies))
	}
	body := f.bodies[0]
	if body["model"] != "deepseek-ai/deepseek-coder-1.3b" {
		t.Errorf("model = %v", body["model"])
	}
	if body["prompt"] != "Hello, DeepSeek!" {
		t.Errorf("prompt = %v", body["prompt"])
	}
	if body["max_tokens"] != float64(50) {
		t.Errorf("max_tokens = %v", body["max_tokens"])
	}
	if body["temperature"] != 0.2 {
		t.Errorf("temperature = %v", body["temperature"])
	}
	if body["device"] != "cpu" || body["dtype"] != "float32" {
		t.Errorf("device/dtype not passed through: %v %v", body["device"], body["dtype"])
	}
	if _, ok := body["echo"]; ok {
		t.Errorf("echo should be omitted when false")
	}
}

func TestOpenAIAutoDeviceOmitted(t *testing.T) {
	f := &fakeServer{text: "x"}
	eng := newTestEngine(t, f, ModelSpec{Name: "m", Device: DeviceAuto})
	if _, err := eng.Generate(context.Background(), "p", Options{MaxNewTokens: 1, Echo: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	body := f.bodies[0]
	if _, ok := body["device"]; ok {
		t.Errorf("device should be omitted for auto")
	}
	if body["echo"] != true {
		t.Errorf("echo = %v, want true", body["echo"])
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	f := &fakeServer{noChoice: true}
	eng := newTestEngine(t, f, ModelSpec{Name: "m"})
	_, err := eng.Generate(context.Background(), "p", Options{MaxNewTokens: 5})
	if !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestOpenAIRejectsZeroBudget(t *testing.T) {
	f := &fakeServer{}
	eng := newTestEngine(t, f, ModelSpec{Name: "m"})
	if _, err := eng.Generate(context.Background(), "p", Options{}); err == nil {
		t.Fatal("expected error for zero max new tokens")
	}
	if len(f.bodies) != 0 {
		t.Fatal("no request should be sent")
	}
}

func TestOpenAIVerify(t *testing.T) {
	f := &fakeServer{models: []string{"other", "tiny"}}
	if err := newTestEngine(t, f, ModelSpec{Name: "tiny"}).Verify(context.Background()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	err := newTestEngine(t, f, ModelSpec{Name: "missing"}).Verify(context.Background())
	if !errors.Is(err, ErrModelNotServed) {
		t.Fatalf("err = %v, want ErrModelNotServed", err)
	}
}

func TestNewOpenAIEngineValidation(t *testing.T) {
	if _, err := NewOpenAIEngine(nil, ModelSpec{Name: "m"}, nil); err == nil {
		t.Error("expected error for nil settings")
	}
	if _, err := NewOpenAIEngine(&Settings{}, ModelSpec{Name: "m"}, nil); err == nil {
		t.Error("expected error for missing api key")
	}
	if _, err := NewOpenAIEngine(&Settings{APIKey: "k"}, ModelSpec{}, nil); err == nil {
		t.Error("expected error for missing model")
	}
	if _, err := NewOpenAIEngine(&Settings{APIKey: "k"}, ModelSpec{Name: "m", Device: "tpu"}, nil); err == nil {
		t.Error("expected error for unknown device")
	}
}
