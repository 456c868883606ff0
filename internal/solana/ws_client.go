package solana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ErrConnectionLost is returned when the read loop has stopped and no
// subscription response can arrive.
var ErrConnectionLost = errors.New("websocket connection lost")

// WSClientConfig configures WebSocket client behavior.
type WSClientConfig struct {
	// HandshakeTimeout bounds the initial dial.
	HandshakeTimeout time.Duration
	// SubscribeTimeout bounds the wait for a subscription ID.
	SubscribeTimeout time.Duration
	// PingInterval is interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is timeout for reading messages.
	ReadTimeout time.Duration
	// WriteTimeout is timeout for writing messages.
	WriteTimeout time.Duration
}

// DefaultWSConfig returns default WebSocket configuration.
func DefaultWSConfig() WSClientConfig {
	return WSClientConfig{
		HandshakeTimeout: 10 * time.Second,
		SubscribeTimeout: 30 * time.Second,
		PingInterval:     30 * time.Second,
		ReadTimeout:      120 * time.Second,
		WriteTimeout:     10 * time.Second,
	}
}

// WSClient implements SignatureSubscriber using gorilla/websocket.
type WSClient struct {
	endpoint string
	config   WSClientConfig

	conn      *websocket.Conn
	connMu    sync.Mutex
	closed    atomic.Bool
	requestID atomic.Uint64

	// subs maps subscription ID to its notification channel
	subs   map[int64]*signatureSub
	subsMu sync.Mutex

	// pendingSubs maps request ID to a subscription awaiting its ID
	pendingSubs   map[uint64]*signatureSub
	pendingSubsMu sync.Mutex

	done chan struct{}
	// readDone is closed when readLoop exits; nothing acks subscribes after that.
	readDone chan struct{}
	wg       sync.WaitGroup
}

type signatureSub struct {
	signature string
	ch        chan SignatureNotification
	ack       chan bool // true once subscribed, false if rejected
}

// NewWSClient creates a new WebSocket client and connects to the endpoint.
func NewWSClient(ctx context.Context, endpoint string, config *WSClientConfig) (*WSClient, error) {
	cfg := DefaultWSConfig()
	if config != nil {
		cfg = *config
	}

	c := &WSClient{
		endpoint:    endpoint,
		config:      cfg,
		subs:        make(map[int64]*signatureSub),
		pendingSubs: make(map[uint64]*signatureSub),
		done:        make(chan struct{}),
		readDone:    make(chan struct{}),
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.HandshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	c.conn = conn

	c.wg.Add(1)
	go c.readLoop()

	c.wg.Add(1)
	go c.pingLoop()

	return c, nil
}

// SubscribeSignature subscribes to a transaction signature at the given commitment.
func (c *WSClient) SubscribeSignature(ctx context.Context, signature string, commitment Commitment) (<-chan SignatureNotification, error) {
	if c.closed.Load() {
		return nil, fmt.Errorf("client closed")
	}
	select {
	case <-c.readDone:
		return nil, ErrConnectionLost
	default:
	}

	reqID := c.requestID.Add(1)
	req := wsRequest{
		JSONRPC: "2.0",
		ID:      reqID,
		Method:  "signatureSubscribe",
		Params: []interface{}{
			signature,
			map[string]string{"commitment": string(commitment)},
		},
	}

	// Buffered so the read loop never blocks on a slow consumer.
	sub := &signatureSub{
		signature: signature,
		ch:        make(chan SignatureNotification, 1),
		ack:       make(chan bool, 1),
	}
	c.pendingSubsMu.Lock()
	c.pendingSubs[reqID] = sub
	c.pendingSubsMu.Unlock()

	c.connMu.Lock()
	c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	err := c.conn.WriteJSON(req)
	c.connMu.Unlock()

	if err != nil {
		c.dropPending(reqID)
		return nil, fmt.Errorf("write subscribe: %w", err)
	}

	select {
	case ok := <-sub.ack:
		if !ok {
			return nil, fmt.Errorf("signatureSubscribe rejected for %s", signature)
		}
		return sub.ch, nil
	case <-time.After(c.config.SubscribeTimeout):
		c.dropPending(reqID)
		return nil, fmt.Errorf("subscription timeout after %s", c.config.SubscribeTimeout)
	case <-c.done:
		return nil, fmt.Errorf("client closed")
	case <-c.readDone:
		c.dropPending(reqID)
		return nil, ErrConnectionLost
	case <-ctx.Done():
		c.dropPending(reqID)
		return nil, ctx.Err()
	}
}

func (c *WSClient) dropPending(reqID uint64) {
	c.pendingSubsMu.Lock()
	delete(c.pendingSubs, reqID)
	c.pendingSubsMu.Unlock()
}

// Close closes the WebSocket connection.
func (c *WSClient) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	close(c.done)

	c.connMu.Lock()
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
	c.connMu.Unlock()

	c.wg.Wait()

	c.closeSubscriptions()
	return nil
}

// closeSubscriptions closes every open notification and pending channel.
func (c *WSClient) closeSubscriptions() {
	c.subsMu.Lock()
	for id, sub := range c.subs {
		close(sub.ch)
		delete(c.subs, id)
	}
	c.subsMu.Unlock()

	c.pendingSubsMu.Lock()
	for id, sub := range c.pendingSubs {
		sub.ack <- false
		delete(c.pendingSubs, id)
	}
	c.pendingSubsMu.Unlock()
}

// readLoop reads messages and dispatches them. Signature subscriptions are
// single-shot, so a lost connection ends all of them instead of reconnecting.
func (c *WSClient) readLoop() {
	defer c.wg.Done()
	defer close(c.readDone)

	for !c.closed.Load() {
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))

		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if !c.closed.Load() {
				c.closeSubscriptions()
			}
			return
		}

		c.handleMessage(message)
	}
}

// handleMessage processes incoming WebSocket message.
func (c *WSClient) handleMessage(message []byte) {
	// Subscription IDs may be zero, so presence of "result" is what counts.
	var resp struct {
		ID     uint64 `json:"id"`
		Result *int64 `json:"result"`
	}
	if err := json.Unmarshal(message, &resp); err == nil && resp.Result != nil {
		c.handleSubscribeResponse(&wsSubscribeResponse{ID: resp.ID, Result: *resp.Result})
		return
	}

	var notif wsNotification
	if err := json.Unmarshal(message, &notif); err == nil && notif.Method == "signatureNotification" {
		c.handleSignatureNotification(&notif)
		return
	}

	var errResp struct {
		ID    uint64 `json:"id"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(message, &errResp); err == nil && errResp.Error != nil {
		// Fail the pending subscribe fast instead of waiting for its timeout.
		c.pendingSubsMu.Lock()
		if sub, ok := c.pendingSubs[errResp.ID]; ok {
			delete(c.pendingSubs, errResp.ID)
			sub.ack <- false
		}
		c.pendingSubsMu.Unlock()
	}
}

// handleSubscribeResponse registers the subscription before acknowledging it,
// so a notification arriving right after the response is not lost.
func (c *WSClient) handleSubscribeResponse(resp *wsSubscribeResponse) {
	c.pendingSubsMu.Lock()
	sub, ok := c.pendingSubs[resp.ID]
	if ok {
		delete(c.pendingSubs, resp.ID)
	}
	c.pendingSubsMu.Unlock()

	if !ok {
		return
	}

	c.subsMu.Lock()
	c.subs[resp.Result] = sub
	c.subsMu.Unlock()

	sub.ack <- true
}

// handleSignatureNotification delivers the notification and ends the
// subscription; the node auto-unsubscribes after the first notification.
func (c *WSClient) handleSignatureNotification(notif *wsNotification) {
	if notif.Params == nil {
		return
	}

	c.subsMu.Lock()
	sub, ok := c.subs[notif.Params.Subscription]
	if ok {
		delete(c.subs, notif.Params.Subscription)
	}
	c.subsMu.Unlock()

	if !ok {
		return
	}

	out := SignatureNotification{
		Signature: sub.signature,
		Err:       notif.Params.Result.Value.Err,
	}
	if notif.Params.Result.Context != nil {
		out.Slot = notif.Params.Result.Context.Slot
	}

	sub.ch <- out
	close(sub.ch)
}

// pingLoop sends periodic ping frames to keep connection alive.
func (c *WSClient) pingLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.connMu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			// Write errors surface as read errors in readLoop.
			_ = c.conn.WriteMessage(websocket.PingMessage, nil)
			c.connMu.Unlock()
		}
	}
}

// WebSocket message types

type wsRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type wsSubscribeResponse struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Result  int64  `json:"result"` // subscription ID
}

type wsNotification struct {
	JSONRPC string                `json:"jsonrpc"`
	Method  string                `json:"method"`
	Params  *wsNotificationParams `json:"params"`
}

type wsNotificationParams struct {
	Subscription int64                `json:"subscription"`
	Result       wsNotificationResult `json:"result"`
}

type wsNotificationResult struct {
	Context *wsContext       `json:"context"`
	Value   wsSignatureValue `json:"value"`
}

type wsContext struct {
	Slot int64 `json:"slot"`
}

type wsSignatureValue struct {
	Err interface{} `json:"err"`
}

var _ SignatureSubscriber = (*WSClient)(nil)
