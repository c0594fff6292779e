package chatclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reply chat completion 中第一個 choice 的助理回覆
type Reply struct {
	Text  string
	Model string
}

// ExtractReply 讀取 choices[0].message.content；
// content 可以是字串，或是 parts 陣列（只串接 type=="text" 的 text）
func ExtractReply(body []byte) (Reply, error) {
	var completion struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content json.RawMessage `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return Reply{}, fmt.Errorf("decode chat completion: %w", err)
	}
	reply := Reply{Model: completion.Model}
	if len(completion.Choices) == 0 {
		return reply, nil
	}
	reply.Text = contentText(completion.Choices[0].Message.Content)
	return reply, nil
}

func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	var b strings.Builder
	for _, p := range parts {
		if p.Type == "text" {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
