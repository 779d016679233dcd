package inject

import (
	"log"
	"net/http"
	"os"

	"github.com/samber/do"

	"github.com/julianlk522/stylize/config"
	"github.com/julianlk522/stylize/handler"
	m "github.com/julianlk522/stylize/middleware"
	"github.com/julianlk522/stylize/provider"
)

func Setup(cfg *config.Config) *do.Injector {
	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Printf(format, args...)
		},
	})

	do.ProvideValue[*config.Config](injector, cfg)
	do.Provide[*http.Client](injector, func(i *do.Injector) (*http.Client, error) {
		return &http.Client{Timeout: do.MustInvoke[*config.Config](i).ProviderTimeout}, nil
	})
	do.Provide[provider.Generator](injector, func(i *do.Injector) (provider.Generator, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return provider.NewOpenAIGenerator(
			do.MustInvoke[*http.Client](i),
			cfg.ProviderBaseURL,
			cfg.ProviderAPIKey,
		), nil
	})
	do.Provide[*handler.Relay](injector, func(i *do.Injector) (*handler.Relay, error) {
		return handler.NewRelay(
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[provider.Generator](i),
		), nil
	})
	do.Provide[*m.SplitLogFormatter](injector, func(i *do.Injector) (*m.SplitLogFormatter, error) {
		return m.NewSplitLogFormatter(
			log.New(os.Stdout, "", log.LstdFlags),
			do.MustInvoke[*config.Config](i).ErrLogFile,
		)
	})

	return injector
}
