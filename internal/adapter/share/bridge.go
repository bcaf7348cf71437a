package share

import (
	"context"

	natsAdapter "github.com/momenanwar82-bot/Bazaar-Pro/internal/adapter/messaging/nats"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/platform/logger"
	"github.com/momenanwar82-bot/Bazaar-Pro/internal/usecase"
	"go.uber.org/zap"
)

const (
	shareSubject     = "ui.share.request"
	clipboardSubject = "ui.clipboard.write"
)

// Bridge relays share and clipboard requests to the platform's UI bridge
// over NATS. Whether a native share capability exists is a deployment
// property: when the bridge is not enabled, callers fall back to the
// clipboard path, mirroring the capability probe on the client platform.
type Bridge struct {
	pub     *natsAdapter.Publisher
	enabled bool
	logger  *logger.Logger
}

// NewBridge creates a Bridge. enabled=false models a platform with no
// native share capability.
func NewBridge(pub *natsAdapter.Publisher, enabled bool, log *logger.Logger) *Bridge {
	return &Bridge{
		pub:     pub,
		enabled: enabled,
		logger:  log.Named("ShareBridge"),
	}
}

// Available probes for the native share capability.
func (b *Bridge) Available() bool {
	return b.enabled && b.pub != nil
}

// Share hands the payload to the native share capability. The contract
// ends at accepted-for-delivery; a user abort is reported by richer
// gateway implementations, never by this one-way bridge.
func (b *Bridge) Share(ctx context.Context, payload usecase.SharePayload) error {
	b.logger.Debug("Relaying share request", zap.String("title", payload.Title))
	return b.pub.Publish(ctx, shareSubject, payload)
}

// WriteText asks the platform to place text on the clipboard.
func (b *Bridge) WriteText(ctx context.Context, text string) error {
	b.logger.Debug("Relaying clipboard write", zap.Int("length", len(text)))
	return b.pub.Publish(ctx, clipboardSubject, map[string]string{"text": text})
}
