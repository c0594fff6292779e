package proxytoken

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Decision 共享 token 檢查結果
type Decision int

const (
	Authorized Decision = iota
	Unauthorized
	Misconfigured
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	case Misconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}

// Mode 端點的檢查模式
type Mode string

const (
	ModeOff      Mode = "off"
	ModeOptional Mode = "optional"
	ModeRequired Mode = "required"
)

// ParseMode 無法辨識時回傳 fallback
func ParseMode(value string, fallback Mode) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeOff:
		return ModeOff
	case ModeOptional:
		return ModeOptional
	case ModeRequired:
		return ModeRequired
	default:
		return fallback
	}
}

const (
	FromBearer = "bearer"
	FromHeader = "x-proxy-token"
	FromQuery  = "query"

	HeaderName = "X-Proxy-Token"
	QueryName  = "token"
)

// Extract 依序讀取 Bearer、X-Proxy-Token、?token=，取第一個非空值
func Extract(r *http.Request) (token string, from string) {
	// 1) Authorization: Bearer <token>
	if auth := strings.TrimSpace(r.Header.Get("Authorization")); auth != "" {
		if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
			if tok := strings.TrimSpace(auth[len("bearer "):]); tok != "" {
				return tok, FromBearer
			}
		}
	}

	// 2) X-Proxy-Token
	if x := strings.TrimSpace(r.Header.Get(HeaderName)); x != "" {
		return x, FromHeader
	}

	// 3) ?token=
	if r.URL != nil {
		if q := strings.TrimSpace(r.URL.Query().Get(QueryName)); q != "" {
			return q, FromQuery
		}
	}
	return "", ""
}

// Authorize 純函式：未設定 token 為 Misconfigured，不相符為 Unauthorized
func Authorize(provided, configured string) Decision {
	if configured == "" {
		return Misconfigured
	}
	if provided == "" {
		return Unauthorized
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
		return Unauthorized
	}
	return Authorized
}

// Evaluate 依模式決定；off 或 optional 且未設定 token 時直接放行
func Evaluate(mode Mode, provided, configured string) Decision {
	switch mode {
	case ModeOff:
		return Authorized
	case ModeOptional:
		if configured == "" {
			return Authorized
		}
	}
	return Authorize(provided, configured)
}
