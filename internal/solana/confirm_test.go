package solana

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// statusRPC serves signature statuses from a mutable map; other methods are unused.
type statusRPC struct {
	RPCClient

	mu       sync.Mutex
	statuses map[string]*SignatureStatus
	polls    int
}

func (s *statusRPC) GetSignatureStatuses(_ context.Context, sigs []string) ([]*SignatureStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	out := make([]*SignatureStatus, len(sigs))
	for i, sig := range sigs {
		out[i] = s.statuses[sig]
	}
	return out, nil
}

func (s *statusRPC) set(sig string, st *SignatureStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[sig] = st
}

// fakeSubscriber hands out a prepared channel or error.
type fakeSubscriber struct {
	ch  chan SignatureNotification
	err error
}

func (f *fakeSubscriber) SubscribeSignature(context.Context, string, Commitment) (<-chan SignatureNotification, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

func (f *fakeSubscriber) Close() error { return nil }

func TestPollingConfirmer_ReachesCommitment(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{}}
	rpc.set("sig", &SignatureStatus{ConfirmationStatus: CommitmentProcessed})

	go func() {
		time.Sleep(30 * time.Millisecond)
		rpc.set("sig", &SignatureStatus{ConfirmationStatus: CommitmentFinalized})
	}()

	p := &PollingConfirmer{RPC: rpc, Commitment: CommitmentConfirmed, Interval: 10 * time.Millisecond, Timeout: time.Second}
	if err := p.Confirm(context.Background(), "sig"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if rpc.polls < 2 {
		t.Errorf("expected at least 2 polls, got %d", rpc.polls)
	}
}

func TestPollingConfirmer_TransactionFailed(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{
		"sig": {ConfirmationStatus: CommitmentConfirmed, Err: map[string]interface{}{"InstructionError": []interface{}{1, "Custom"}}},
	}}

	p := &PollingConfirmer{RPC: rpc, Commitment: CommitmentConfirmed, Interval: 10 * time.Millisecond, Timeout: time.Second}
	err := p.Confirm(context.Background(), "sig")
	if !errors.Is(err, ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
}

func TestPollingConfirmer_Timeout(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{}}

	p := &PollingConfirmer{RPC: rpc, Commitment: CommitmentFinalized, Interval: 10 * time.Millisecond, Timeout: 50 * time.Millisecond}
	err := p.Confirm(context.Background(), "never")
	if !errors.Is(err, ErrConfirmationTimeout) {
		t.Fatalf("expected ErrConfirmationTimeout, got %v", err)
	}
}

func TestPollingConfirmer_Cancelled(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &PollingConfirmer{RPC: rpc, Commitment: CommitmentConfirmed, Interval: 10 * time.Millisecond, Timeout: time.Second}
	err := p.Confirm(ctx, "sig")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWSConfirmer_Notification(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{}}
	sub := &fakeSubscriber{ch: make(chan SignatureNotification, 1)}
	sub.ch <- SignatureNotification{Signature: "sig", Slot: 9}

	w := &WSConfirmer{WS: sub, RPC: rpc, Commitment: CommitmentConfirmed, Timeout: time.Second}
	if err := w.Confirm(context.Background(), "sig"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
}

func TestWSConfirmer_NotificationError(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{}}
	sub := &fakeSubscriber{ch: make(chan SignatureNotification, 1)}
	sub.ch <- SignatureNotification{Signature: "sig", Err: "InsufficientFundsForRent"}

	w := &WSConfirmer{WS: sub, RPC: rpc, Commitment: CommitmentConfirmed, Timeout: time.Second}
	err := w.Confirm(context.Background(), "sig")
	if !errors.Is(err, ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
}

func TestWSConfirmer_AlreadyLanded(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{
		"sig": {ConfirmationStatus: CommitmentFinalized},
	}}
	// The notification never arrives; the status check must short-circuit.
	sub := &fakeSubscriber{ch: make(chan SignatureNotification)}

	w := &WSConfirmer{WS: sub, RPC: rpc, Commitment: CommitmentConfirmed, Timeout: time.Second}
	if err := w.Confirm(context.Background(), "sig"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
}

func TestWSConfirmer_FallsBackToPolling(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{}}
	sub := &fakeSubscriber{err: errors.New("dial failed")}

	go func() {
		time.Sleep(20 * time.Millisecond)
		rpc.set("sig", &SignatureStatus{ConfirmationStatus: CommitmentConfirmed})
	}()

	w := &WSConfirmer{WS: sub, RPC: rpc, Commitment: CommitmentConfirmed, Timeout: 3 * time.Second}
	if err := w.Confirm(context.Background(), "sig"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
}

func TestWSConfirmer_ClosedChannelFallsBack(t *testing.T) {
	rpc := &statusRPC{statuses: map[string]*SignatureStatus{}}
	sub := &fakeSubscriber{ch: make(chan SignatureNotification)}
	close(sub.ch)

	go func() {
		time.Sleep(20 * time.Millisecond)
		rpc.set("sig", &SignatureStatus{ConfirmationStatus: CommitmentFinalized})
	}()

	w := &WSConfirmer{WS: sub, RPC: rpc, Commitment: CommitmentFinalized, Timeout: 3 * time.Second}
	if err := w.Confirm(context.Background(), "sig"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
}

func TestCommitment_Satisfies(t *testing.T) {
	tests := []struct {
		status Commitment
		target Commitment
		want   bool
	}{
		{CommitmentProcessed, CommitmentConfirmed, false},
		{CommitmentConfirmed, CommitmentConfirmed, true},
		{CommitmentFinalized, CommitmentConfirmed, true},
		{CommitmentConfirmed, CommitmentFinalized, false},
		{Commitment(""), CommitmentProcessed, false},
	}
	for _, tt := range tests {
		if got := tt.status.Satisfies(tt.target); got != tt.want {
			t.Errorf("%q.Satisfies(%q) = %v, want %v", tt.status, tt.target, got, tt.want)
		}
	}
}

func TestParseCommitment(t *testing.T) {
	c, err := ParseCommitment("")
	if err != nil || c != CommitmentConfirmed {
		t.Errorf("empty: got %q, %v", c, err)
	}
	c, err = ParseCommitment(" Finalized ")
	if err != nil || c != CommitmentFinalized {
		t.Errorf("Finalized: got %q, %v", c, err)
	}
	if _, err := ParseCommitment("max"); !errors.Is(err, ErrInvalidCommitment) {
		t.Errorf("expected ErrInvalidCommitment, got %v", err)
	}
}

func TestWSEndpointFor(t *testing.T) {
	if got := WSEndpointFor("https://api.devnet.solana.com"); got != "wss://api.devnet.solana.com" {
		t.Errorf("got %s", got)
	}
	if got := WSEndpointFor("http://127.0.0.1:8899"); got != "ws://127.0.0.1:8899" {
		t.Errorf("got %s", got)
	}
}
