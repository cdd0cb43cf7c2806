package nexustest

import "github.com/iov-one/nexus"

// Handler is a mock implementing the nexus.ReplyHandler interface.
//
// Set DeliverErr or ReplyErr to force an error response. Each method call is
// counted and every reply is recorded.
type Handler struct {
	deliverCall   int
	DeliverResult nexus.Result
	DeliverErr    error

	Replies     []nexus.Reply
	ReplyResult nexus.Result
	ReplyErr    error
}

var _ nexus.ReplyHandler = (*Handler)(nil)

func (h *Handler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) Reply(ctx nexus.Context, db nexus.KVStore, r nexus.Reply) (*nexus.Result, error) {
	h.Replies = append(h.Replies, r)
	if h.ReplyErr != nil {
		return nil, h.ReplyErr
	}
	res := h.ReplyResult
	return &res, nil
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// WriteHandler writes the key/value pair to the store and returns Err.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ nexus.Handler = WriteHandler{}

func (h WriteHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &nexus.Result{}, nil
}

// Msg is a message mock routed by its RoutePath.
type Msg struct {
	RoutePath string
	Err       error
}

var _ nexus.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
