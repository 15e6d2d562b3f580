// internal/app/features/filters/handler.go
package filters

import (
	"go.uber.org/zap"
)

// Handler edits the user-added part of an eligibility filter. The role
// defaults are shown but can never be removed.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(log *zap.Logger) *Handler {
	return &Handler{Log: log}
}
