package solana

import "context"

// SignatureSubscriber defines the Solana PubSub surface used to await confirmation.
type SignatureSubscriber interface {
	// SubscribeSignature subscribes to the status of a transaction signature.
	// The returned channel delivers at most one notification and is closed
	// when the subscription ends or the connection is lost.
	SubscribeSignature(ctx context.Context, signature string, commitment Commitment) (<-chan SignatureNotification, error)

	// Close closes the WebSocket connection.
	Close() error
}

// SignatureNotification reports that a signature reached the subscribed commitment.
type SignatureNotification struct {
	Signature string
	Slot      int64
	Err       interface{} // non-nil if the transaction failed
}
