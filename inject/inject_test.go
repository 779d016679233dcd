package inject

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do"

	"github.com/julianlk522/stylize/config"
	"github.com/julianlk522/stylize/handler"
	m "github.com/julianlk522/stylize/middleware"
	"github.com/julianlk522/stylize/provider"
)

func TestSetup(t *testing.T) {
	cfg := &config.Config{
		ProviderAPIKey:  "sk-test",
		ProviderBaseURL: "https://provider.example/v1/",
		ProviderModel:   "image-stylization-v1",
		ProviderTimeout: 5 * time.Second,
		Port:            5003,
		UploadDir:       t.TempDir(),
		MaxUploadBytes:  10 << 20,
		ErrLogFile:      filepath.Join(t.TempDir(), "err.log"),
	}

	injector := Setup(cfg)
	defer injector.Shutdown()

	relay, err := do.Invoke[*handler.Relay](injector)
	if err != nil {
		t.Fatal(err)
	}
	if relay.Model != cfg.ProviderModel {
		t.Fatalf("expected model %s, got %s", cfg.ProviderModel, relay.Model)
	}
	if relay.UploadDir != cfg.UploadDir {
		t.Fatalf("expected upload dir %s, got %s", cfg.UploadDir, relay.UploadDir)
	}

	gen, ok := relay.Generator.(*provider.OpenAIGenerator)
	if !ok {
		t.Fatalf("expected *provider.OpenAIGenerator, got %T", relay.Generator)
	}
	if gen.BaseURL != "https://provider.example/v1" {
		t.Fatalf("expected trimmed base url, got %s", gen.BaseURL)
	}
	if gen.Client.Timeout != cfg.ProviderTimeout {
		t.Fatalf("expected client timeout %s, got %s", cfg.ProviderTimeout, gen.Client.Timeout)
	}

	f, err := do.Invoke[*m.SplitLogFormatter](injector)
	if err != nil {
		t.Fatal(err)
	}
	if f.FileLogger == nil {
		t.Fatal("expected err log file logger to be set")
	}
}
