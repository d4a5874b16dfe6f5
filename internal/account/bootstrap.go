package account

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aarongantt/tangent-landing/internal/logger"
)

const (
	// defaultReadyTimeout caps how long the bootstrap waits for the plan
	// renderer before giving up.
	defaultReadyTimeout = 5 * time.Second
	// Payment modal registration is retried on a fixed schedule.
	defaultModalRetryInterval = 500 * time.Millisecond
	defaultModalRetryAttempts = 3
)

// ErrPlansNotReady is returned when the plan renderer never resolved within
// the ready timeout. The render callback is not invoked.
var ErrPlansNotReady = errors.New("account: plan renderer not ready")

// ErrModalNotRegistered is returned when the payment modal never resolved
// within the retry budget. The modal callback is not invoked.
var ErrModalNotRegistered = errors.New("account: payment modal not registered")

// Config wires a Bootstrap. Timeouts and retry pacing default when zero.
type Config struct {
	// PlansReady resolves when the plan card renderer is registered.
	PlansReady *Gate
	// RenderPlans draws the plan cards. Invoked at most once.
	RenderPlans func()

	// ModalReady resolves when the payment modal handler is registered.
	ModalReady *Gate
	// OpenPaymentModal starts checkout for the intent. Invoked at most once.
	OpenPaymentModal func(CheckoutIntent)

	ReadyTimeout       time.Duration
	ModalRetryInterval time.Duration
	ModalRetryAttempts int
}

// Bootstrap coordinates the account page startup sequence. It replaces the
// old fixed-interval polling with readiness futures.
type Bootstrap struct {
	cfg Config

	renderOnce sync.Once
	modalOnce  sync.Once
}

// NewBootstrap returns a bootstrap with defaults applied.
func NewBootstrap(cfg Config) *Bootstrap {
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = defaultReadyTimeout
	}
	if cfg.ModalRetryInterval <= 0 {
		cfg.ModalRetryInterval = defaultModalRetryInterval
	}
	if cfg.ModalRetryAttempts <= 0 {
		cfg.ModalRetryAttempts = defaultModalRetryAttempts
	}
	return &Bootstrap{cfg: cfg}
}

// Run executes the bootstrap: render the plan cards once the renderer is
// ready, then open the payment modal if the URL carried a checkout intent.
// Missing readiness is logged and skipped rather than failing the page.
func (b *Bootstrap) Run(ctx context.Context, checkout *CheckoutIntent) error {
	if err := b.renderPlans(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		logger.Errorf("account: %v", err)
	}

	if checkout == nil {
		return nil
	}
	if err := b.openModal(ctx, *checkout); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		logger.Errorf("account: %v", err)
		return err
	}
	return nil
}

// renderPlans waits for the renderer gate up to the ready timeout and fires
// the callback exactly once.
func (b *Bootstrap) renderPlans(ctx context.Context) error {
	if b.cfg.PlansReady == nil || b.cfg.RenderPlans == nil {
		return nil
	}
	timer := time.NewTimer(b.cfg.ReadyTimeout)
	defer timer.Stop()

	select {
	case <-b.cfg.PlansReady.Done():
		b.renderOnce.Do(b.cfg.RenderPlans)
		return nil
	case <-timer.C:
		return ErrPlansNotReady
	case <-ctx.Done():
		return ctx.Err()
	}
}

// openModal attempts the payment modal on a fixed retry schedule while the
// modal handler is not yet registered.
func (b *Bootstrap) openModal(ctx context.Context, intent CheckoutIntent) error {
	if b.cfg.ModalReady == nil || b.cfg.OpenPaymentModal == nil {
		return ErrModalNotRegistered
	}
	for attempt := 1; ; attempt++ {
		if b.cfg.ModalReady.Resolved() {
			b.modalOnce.Do(func() { b.cfg.OpenPaymentModal(intent) })
			return nil
		}
		if attempt >= b.cfg.ModalRetryAttempts {
			return ErrModalNotRegistered
		}
		logger.Debugf("account: payment modal not registered, retrying (%d/%d)",
			attempt, b.cfg.ModalRetryAttempts)

		timer := time.NewTimer(b.cfg.ModalRetryInterval)
		select {
		case <-b.cfg.ModalReady.Done():
			timer.Stop()
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
