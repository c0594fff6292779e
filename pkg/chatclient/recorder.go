package chatclient

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"voxrelay/internal/core"
)

// AudioSource 錄音來源（麥克風、檔案等）
type AudioSource interface {
	Start(ctx context.Context) error
	// Stop 結束錄音並回傳內容
	Stop() (Audio, error)
	// Release 釋放裝置，可重複呼叫
	Release() error
}

type Audio struct {
	Name     string
	MimeType string
	Data     []byte
}

type RecorderState string

const (
	RecorderIdle         RecorderState = "idle"
	RecorderRecording    RecorderState = "recording"
	RecorderStopped      RecorderState = "stopped"
	RecorderTranscribing RecorderState = "transcribing"
)

// Recorder idle → recording → stopped → transcribing → idle
type Recorder struct {
	source       AudioSource
	client       *Client
	conversation *Conversation

	mu    sync.Mutex
	state RecorderState
}

func NewRecorder(source AudioSource, client *Client, conversation *Conversation) *Recorder {
	return &Recorder{
		source:       source,
		client:       client,
		conversation: conversation,
		state:        RecorderIdle,
	}
}

func (r *Recorder) State() RecorderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start 錄音中或轉錄中再次呼叫回傳 ErrAlreadyRecording
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == RecorderRecording || r.state == RecorderTranscribing {
		return ErrAlreadyRecording
	}
	if err := r.source.Start(ctx); err != nil {
		_ = r.source.Release()
		r.state = RecorderIdle
		return err
	}
	r.state = RecorderRecording
	return nil
}

// Stop 結束錄音並釋放來源
func (r *Recorder) Stop() (Audio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopLocked()
}

func (r *Recorder) stopLocked() (Audio, error) {
	if r.state != RecorderRecording {
		return Audio{}, ErrNotRecording
	}
	audio, err := r.source.Stop()
	_ = r.source.Release()
	if err != nil {
		r.state = RecorderIdle
		return Audio{}, err
	}
	r.state = RecorderStopped
	return audio, nil
}

// StopAndSend 停止錄音、轉錄，再把逐字稿交給 Conversation.Send
func (r *Recorder) StopAndSend(ctx context.Context) (ChatMessage, error) {
	r.mu.Lock()
	audio, err := r.stopLocked()
	if err != nil {
		r.mu.Unlock()
		return ChatMessage{}, err
	}
	r.state = RecorderTranscribing
	r.mu.Unlock()

	transcription, err := r.client.Transcribe(ctx, audio.Name, audio.MimeType, bytes.NewReader(audio.Data))

	r.mu.Lock()
	r.state = RecorderIdle
	r.mu.Unlock()

	if err != nil {
		r.conversation.fail(err)
		return ChatMessage{}, err
	}

	// 沒有語音時只提示，不產生對話
	text := strings.TrimSpace(transcription.Text)
	if text == "" || text == core.NoSpeechDetectedText {
		r.conversation.notice(core.NoSpeechDetectedText)
		return ChatMessage{}, ErrNoSpeech
	}
	return r.conversation.Send(ctx, text)
}

// Cancel 丟棄錄音並釋放來源
func (r *Recorder) Cancel() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == RecorderRecording {
		_, _ = r.source.Stop()
	}
	r.state = RecorderIdle
	return r.source.Release()
}

func (r *Recorder) Close() error {
	return r.Cancel()
}
