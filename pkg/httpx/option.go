package httpx

import "telco_churn/pkg/logx"

type Option func(*LoggingRoundTripper)

// WithLogFieldMaxLen truncates dumped bodies, zero keeps them whole.
func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(masker logx.Masker) Option {
	return func(rt *LoggingRoundTripper) {
		if masker != nil {
			rt.sensitiveDataMasker = masker
		}
	}
}
