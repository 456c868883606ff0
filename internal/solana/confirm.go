package solana

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Confirmation errors.
var (
	// ErrTransactionFailed is returned when a confirmed transaction carries an error.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrConfirmationTimeout is returned when the commitment is not reached in time.
	ErrConfirmationTimeout = errors.New("confirmation timeout")
)

// Default confirmation settings.
const (
	DefaultConfirmTimeout = 90 * time.Second
	DefaultPollInterval   = 500 * time.Millisecond
)

// Confirmer waits until a submitted transaction reaches a commitment level.
type Confirmer interface {
	Confirm(ctx context.Context, signature string) error
}

// PollingConfirmer confirms by polling getSignatureStatuses.
type PollingConfirmer struct {
	RPC        RPCClient
	Commitment Commitment
	Interval   time.Duration
	Timeout    time.Duration
}

// NewPollingConfirmer creates a polling confirmer with default interval and timeout.
func NewPollingConfirmer(rpc RPCClient, commitment Commitment) *PollingConfirmer {
	return &PollingConfirmer{
		RPC:        rpc,
		Commitment: commitment,
		Interval:   DefaultPollInterval,
		Timeout:    DefaultConfirmTimeout,
	}
}

// Confirm polls until the signature reaches the commitment, fails, or times out.
func (p *PollingConfirmer) Confirm(ctx context.Context, signature string) error {
	ctx, cancel := withConfirmTimeout(ctx, p.Timeout)
	defer cancel()

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := checkStatus(ctx, p.RPC, signature, p.Commitment)
		if err != nil || done {
			return err
		}

		select {
		case <-ctx.Done():
			return timeoutErr(ctx, signature)
		case <-ticker.C:
		}
	}
}

// WSConfirmer confirms through a signatureSubscribe notification. When the
// subscription cannot be established or is lost it falls back to polling.
type WSConfirmer struct {
	WS         SignatureSubscriber
	RPC        RPCClient
	Commitment Commitment
	Timeout    time.Duration
	Logger     *log.Logger
}

// Confirm waits for the signature notification.
func (w *WSConfirmer) Confirm(ctx context.Context, signature string) error {
	ctx, cancel := withConfirmTimeout(ctx, w.Timeout)
	defer cancel()

	ch, err := w.WS.SubscribeSignature(ctx, signature, w.Commitment)
	if err != nil {
		if ctx.Err() != nil {
			return timeoutErr(ctx, signature)
		}
		w.logf("signatureSubscribe failed, polling instead: %v", err)
		return w.poll(ctx, signature)
	}

	// The transaction may have landed before the subscription was active.
	if done, err := checkStatus(ctx, w.RPC, signature, w.Commitment); err != nil || done {
		return err
	}

	select {
	case notif, ok := <-ch:
		if !ok {
			w.logf("subscription for %s closed, polling instead", signature)
			return w.poll(ctx, signature)
		}
		if notif.Err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTransactionFailed, signature, notif.Err)
		}
		return nil
	case <-ctx.Done():
		return timeoutErr(ctx, signature)
	}
}

func (w *WSConfirmer) poll(ctx context.Context, signature string) error {
	p := &PollingConfirmer{RPC: w.RPC, Commitment: w.Commitment, Interval: DefaultPollInterval}
	return p.Confirm(ctx, signature)
}

func (w *WSConfirmer) logf(format string, args ...interface{}) {
	if w.Logger != nil {
		w.Logger.Printf(format, args...)
	}
}

// checkStatus reports whether the signature has reached commitment.
func checkStatus(ctx context.Context, rpc RPCClient, signature string, commitment Commitment) (bool, error) {
	statuses, err := rpc.GetSignatureStatuses(ctx, []string{signature})
	if err != nil {
		if ctx.Err() != nil {
			return false, timeoutErr(ctx, signature)
		}
		return false, fmt.Errorf("get signature status: %w", err)
	}
	if len(statuses) == 0 || statuses[0] == nil {
		return false, nil
	}
	status := statuses[0]
	if status.Err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrTransactionFailed, signature, status.Err)
	}
	return status.ConfirmationStatus.Satisfies(commitment), nil
}

func withConfirmTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func timeoutErr(ctx context.Context, signature string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrConfirmationTimeout, signature)
	}
	return ctx.Err()
}
