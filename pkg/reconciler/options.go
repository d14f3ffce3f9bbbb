package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/qisthidev/Antigravity-Manager/pkg/i18n"
	"github.com/qisthidev/Antigravity-Manager/pkg/logging"
)

type options struct {
	translator i18n.Translator
	logger     *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		translator: i18n.Nop{},
		logger:     logging.Default(),
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Option configures reconciliation.
type Option func(*options)

// WithTranslator resolves catalog i18n keys. Nil keeps the default, which
// returns fallbacks unchanged.
func WithTranslator(t i18n.Translator) Option {
	return func(o *options) {
		if t != nil {
			o.translator = t
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
