package generator

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
)

func TestLoadMock(t *testing.T) {
	eng, err := Load(context.Background(), Settings{Provider: ProviderMock}, ModelSpec{Name: "tiny"}, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer eng.Close()
	if eng.Model() != "tiny" {
		t.Fatalf("Model() = %q", eng.Model())
	}
}

func TestLoadUnknownProvider(t *testing.T) {
	_, err := Load(context.Background(), Settings{Provider: "torch"}, ModelSpec{Name: "tiny"}, nil)
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("err = %v, want ErrUnknownProvider", err)
	}
}

func TestLoadDeepSeekNeedsBaseURL(t *testing.T) {
	_, err := Load(context.Background(), Settings{Provider: ProviderDeepSeek, APIKey: "k"}, ModelSpec{Name: "m"}, nil)
	if err == nil {
		t.Fatal("expected error without base_url")
	}
}

func TestLoadVerifiesModel(t *testing.T) {
	f := &fakeServer{models: []string{"served"}}
	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()

	cfg := Settings{Provider: ProviderOpenAI, APIKey: "k", BaseURL: srv.URL + "/v1", VerifyModel: true}
	eng, err := Load(context.Background(), cfg, ModelSpec{Name: "served"}, srv.Client())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_ = eng.Close()

	_, err = Load(context.Background(), cfg, ModelSpec{Name: "absent"}, srv.Client())
	if !errors.Is(err, ErrModelNotServed) {
		t.Fatalf("err = %v, want ErrModelNotServed", err)
	}
}

func TestLoadRejectsBadSpec(t *testing.T) {
	if _, err := Load(context.Background(), Settings{Provider: ProviderMock}, ModelSpec{Name: "m", DType: "int4"}, nil); err == nil {
		t.Fatal("expected error for unknown dtype")
	}
}
