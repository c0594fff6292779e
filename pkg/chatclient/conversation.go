package chatclient

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageStatus 助理訊息狀態：pending → resolved | error；使用者訊息為空字串
type MessageStatus string

const (
	StatusNone     MessageStatus = ""
	StatusPending  MessageStatus = "pending"
	StatusResolved MessageStatus = "resolved"
	StatusError    MessageStatus = "error"
)

type ChatMessage struct {
	ID     string
	Role   Role
	Text   string
	Status MessageStatus
	Meta   map[string]any
}

type ConversationOption func(*Conversation)

// WithTemperature 每次送出時附帶 temperature
func WithTemperature(temperature float64) ConversationOption {
	return func(c *Conversation) { c.temperature = &temperature }
}

// WithSystemPrompt 每次送出時放在 messages 最前面
func WithSystemPrompt(prompt string) ConversationOption {
	return func(c *Conversation) { c.systemPrompt = prompt }
}

// Conversation 對話狀態機；所有呼叫綁在自身 context，Close 後在途結果直接丟棄
type Conversation struct {
	client       *Client
	ctx          context.Context
	cancel       context.CancelFunc
	temperature  *float64
	systemPrompt string

	mu       sync.Mutex
	messages []ChatMessage
	banner   string
	closed   bool
}

func NewConversation(parent context.Context, client *Client, opts ...ConversationOption) *Conversation {
	ctx, cancel := context.WithCancel(parent)
	c := &Conversation{client: client, ctx: ctx, cancel: cancel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send 加入使用者訊息與 pending 的助理佔位訊息，並清除 banner；
// 成功回傳 resolved 訊息，失敗時佔位訊息轉為 error 並同步到 banner
func (c *Conversation) Send(ctx context.Context, text string) (ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ChatMessage{}, ErrClosed
	}
	history := c.historyLocked()
	history = append(history, Message{Role: string(RoleUser), Content: text})
	c.messages = append(c.messages, ChatMessage{ID: newID(), Role: RoleUser, Text: text})
	placeholder := ChatMessage{ID: newID(), Role: RoleAssistant, Status: StatusPending}
	c.messages = append(c.messages, placeholder)
	c.banner = ""
	c.mu.Unlock()

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	body, err := c.client.Chat(callCtx, ChatRequest{Messages: history, Temperature: c.temperature})
	var reply Reply
	if err == nil {
		reply, err = ExtractReply(body)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ChatMessage{}, ErrClosed
	}
	i := c.indexLocked(placeholder.ID)
	if i < 0 {
		return ChatMessage{}, ErrClosed
	}
	if err != nil {
		message := NormalizeError(err)
		c.messages[i].Status = StatusError
		c.messages[i].Text = message
		c.banner = message
		return c.messages[i], err
	}
	c.messages[i].Status = StatusResolved
	c.messages[i].Text = reply.Text
	if reply.Model != "" {
		c.messages[i].Meta = map[string]any{"model": reply.Model}
	}
	return c.messages[i], nil
}

// Messages 目前訊息的複本
func (c *Conversation) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Banner 最近一次失敗的訊息；下一次 Send 會清除
func (c *Conversation) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

// Pending 是否有尚未完成的請求
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if m.Status == StatusPending {
			return true
		}
	}
	return false
}

// Close 取消在途請求，之後的 Send 回傳 ErrClosed
func (c *Conversation) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// notice 只更新 banner，不加入訊息
func (c *Conversation) notice(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.banner = message
	}
}

func (c *Conversation) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.banner = NormalizeError(err)
	}
}

// 只送出使用者訊息與已完成的助理回覆
func (c *Conversation) historyLocked() []Message {
	history := make([]Message, 0, len(c.messages)+1)
	if c.systemPrompt != "" {
		history = append(history, Message{Role: "system", Content: c.systemPrompt})
	}
	for _, m := range c.messages {
		switch {
		case m.Role == RoleUser:
			history = append(history, Message{Role: string(RoleUser), Content: m.Text})
		case m.Role == RoleAssistant && m.Status == StatusResolved:
			history = append(history, Message{Role: string(RoleAssistant), Content: m.Text})
		}
	}
	return history
}

func (c *Conversation) indexLocked(id string) int {
	for i := range c.messages {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
