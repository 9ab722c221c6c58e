//go:build v8

package funcbox

import (
	"log/slog"

	"github.com/funcbox/funcbox/internal/core"
	"github.com/funcbox/funcbox/internal/v8engine"
)

func newBackend(cfg core.Config, logger *slog.Logger) core.EngineBackend {
	return v8engine.NewEngine(cfg, logger)
}
