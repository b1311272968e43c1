package fxconfig

import (
	"fmt"
	"log/slog"

	"github.com/lixenwraith/roconfig"

	"go.uber.org/fx"
)

// Validator is implemented by sections that check themselves after decoding.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by sections that fill unset fields after decoding.
type Defaulter interface {
	SetDefaults() (changed bool)
}

type configParams struct {
	fx.In

	Logger *slog.Logger `optional:"true"`
}

// Module provides *roconfig.Config built from b. A *slog.Logger in the
// container, if any, becomes the Config logger; b itself is left unchanged.
func Module(b *roconfig.Builder) fx.Option {
	return fx.Module("roconfig",
		fx.Provide(func(p configParams) (*roconfig.Config, error) {
			builder := *b
			if p.Logger != nil {
				builder.WithLogger(p.Logger)
			}
			cfg, err := builder.Build()
			if err != nil {
				return nil, fmt.Errorf("building configuration: %w", err)
			}
			return cfg, nil
		}),
	)
}

// Provide returns a constructor that decodes the mapping at key into a new T,
// then applies SetDefaults and Validate when T implements them.
func Provide[T any](key string) func(*roconfig.Config) (*T, error) {
	return func(cfg *roconfig.Config) (*T, error) {
		target := new(T)
		if err := cfg.Scan(key, target); err != nil {
			return nil, fmt.Errorf("decoding section %q: %w", key, err)
		}

		if defaulter, ok := any(target).(Defaulter); ok {
			if defaulter.SetDefaults() {
				cfg.Logger().Info("defaults applied", slog.String("key", key))
			}
		}

		if validator, ok := any(target).(Validator); ok {
			if err := validator.Validate(); err != nil {
				return nil, fmt.Errorf("validating section %q: %w", key, err)
			}
		}

		return target, nil
	}
}
