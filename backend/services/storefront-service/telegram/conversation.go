package telegram

import (
	"sync"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
)

// DefaultConversationTTL bounds how long the gateway waits for each reply.
const DefaultConversationTTL = 15 * time.Minute

type step int

const (
	stepAwaitingName step = iota
	stepAwaitingPhone
	stepAwaitingTime
	stepAwaitingReason
	stepDone
)

// conversation captures the side-channel fields for one pending status change.
type conversation struct {
	orderID        string
	target         string
	step           step
	orderMessageID int
	promptID       int
	boy            models.DeliveryBoy
	deliveryTime   string
	reason         string
	timer          *time.Timer
	generation     int
}

func newConversation(orderID, target string, orderMessageID int) *conversation {
	c := &conversation{orderID: orderID, target: target, orderMessageID: orderMessageID}
	if target == models.StatusCancelled {
		c.step = stepAwaitingReason
	}
	return c
}

// answer records text against the current step and advances.
func (c *conversation) answer(text string) {
	switch c.step {
	case stepAwaitingName:
		c.boy.Name = text
		c.step = stepAwaitingPhone
	case stepAwaitingPhone:
		c.boy.Contact = text
		c.step = stepAwaitingTime
	case stepAwaitingTime:
		c.deliveryTime = text
		c.step = stepDone
	case stepAwaitingReason:
		c.reason = text
		c.step = stepDone
	}
}

// snapshot copies c without its timer.
func (c *conversation) snapshot() conversation {
	s := *c
	s.timer = nil
	return s
}

// replyResult is the outcome of routing one free-text message.
type replyResult struct {
	conv      conversation
	found     bool
	ambiguous bool
}

// conversations is the per-order registry of pending chat exchanges. At most
// one conversation exists per order; starting a new one replaces the old.
// Every entry expires after ttl without a reply.
type conversations struct {
	mu       sync.Mutex
	ttl      time.Duration
	byOrder  map[string]*conversation
	byPrompt map[int]string
	onExpire func(conversation)
	closed   bool
}

func newConversations(ttl time.Duration, onExpire func(conversation)) *conversations {
	if ttl <= 0 {
		ttl = DefaultConversationTTL
	}
	return &conversations{
		ttl:      ttl,
		byOrder:  make(map[string]*conversation),
		byPrompt: make(map[int]string),
		onExpire: onExpire,
	}
}

func (r *conversations) begin(c *conversation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if old, ok := r.byOrder[c.orderID]; ok {
		r.removeLocked(old)
	}
	r.byOrder[c.orderID] = c
	r.armLocked(c)
}

// setPrompt binds the prompt message that the next reply should thread to.
func (r *conversations) setPrompt(orderID string, promptID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byOrder[orderID]
	if !ok {
		return
	}
	if c.promptID != 0 {
		delete(r.byPrompt, c.promptID)
	}
	c.promptID = promptID
	r.byPrompt[promptID] = orderID
}

// reply routes text to the conversation whose prompt replyTo points at. An
// unthreaded message (replyTo == 0) goes to the only active conversation. A
// message threaded to any other message belongs to no conversation.
// Finished conversations leave the registry.
func (r *conversations) reply(replyTo int, text string) replyResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var c *conversation
	switch {
	case replyTo != 0:
		if orderID, ok := r.byPrompt[replyTo]; ok {
			c = r.byOrder[orderID]
		}
		if c == nil {
			return replyResult{}
		}
	case len(r.byOrder) == 1:
		for _, only := range r.byOrder {
			c = only
		}
	default:
		return replyResult{ambiguous: len(r.byOrder) > 1}
	}

	c.answer(text)
	if c.step == stepDone {
		r.removeLocked(c)
	} else {
		r.armLocked(c)
	}
	return replyResult{conv: c.snapshot(), found: true}
}

func (r *conversations) active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byOrder)
}

// close drops every conversation without firing expiry callbacks.
func (r *conversations) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for _, c := range r.byOrder {
		r.removeLocked(c)
	}
}

func (r *conversations) armLocked(c *conversation) {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.generation++
	gen := c.generation
	c.timer = time.AfterFunc(r.ttl, func() { r.expire(c, gen) })
}

// expire ignores timers that were re-armed after they fired.
func (r *conversations) expire(c *conversation, gen int) {
	r.mu.Lock()
	if r.closed || r.byOrder[c.orderID] != c || c.generation != gen {
		r.mu.Unlock()
		return
	}
	r.removeLocked(c)
	snap := c.snapshot()
	r.mu.Unlock()

	if r.onExpire != nil {
		r.onExpire(snap)
	}
}

func (r *conversations) removeLocked(c *conversation) {
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.promptID != 0 {
		delete(r.byPrompt, c.promptID)
	}
	if r.byOrder[c.orderID] == c {
		delete(r.byOrder, c.orderID)
	}
}
