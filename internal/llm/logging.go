package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggingProvider records every call with its latency and token usage.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
}

func WithLogging(p Provider, logger *slog.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger.With("component", "llm", "model", p.ModelID())}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	attrs := []slog.Attr{
		slog.String("schema", schemaName(req.Schema)),
		slog.Duration("latency", time.Since(start)),
	}
	if resp != nil {
		attrs = append(attrs,
			slog.Int("input_tokens", resp.Usage.InputTokens),
			slog.Int("output_tokens", resp.Usage.OutputTokens),
		)
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "Text generation failed", attrs...)
		return nil, err
	}

	l.logger.LogAttrs(ctx, slog.LevelInfo, "Text generation completed", attrs...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func schemaName(s *Schema) string {
	if s == nil {
		return ""
	}
	return s.Name
}
