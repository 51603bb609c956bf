package oracle

import "context"

// Oracle is the external inference capability. Implementations perform one
// blocking, timeout-bounded generation call and return the raw model text.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateFunc adapts a plain function to the Oracle interface.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
