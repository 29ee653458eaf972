package provisioning

import (
	"context"

	"go.uber.org/zap"
)

type compensation struct {
	step string
	fn   func(ctx context.Context) error
}

// compensations undo completed writes when no transaction can.
type compensations []compensation

func (c *compensations) add(step string, fn func(ctx context.Context) error) {
	*c = append(*c, compensation{step: step, fn: fn})
}

// run executes every compensation newest first. Failures are logged and the
// remaining steps still run; the request context may already be done.
func (c compensations) run(ctx context.Context, logger *zap.Logger) {
	ctx = context.WithoutCancel(ctx)
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].fn(ctx); err != nil {
			logger.Error("compensation failed", zap.String("step", c[i].step), zap.Error(err))
			continue
		}
		logger.Warn("compensation applied", zap.String("step", c[i].step))
	}
}
