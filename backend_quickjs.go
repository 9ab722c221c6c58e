//go:build !v8

package funcbox

import (
	"log/slog"

	"github.com/funcbox/funcbox/internal/core"
	"github.com/funcbox/funcbox/internal/quickjs"
)

func newBackend(cfg core.Config, logger *slog.Logger) core.EngineBackend {
	return quickjs.NewEngine(cfg, logger)
}
