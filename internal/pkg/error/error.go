package error

import (
	"errors"
	"net/http"
)

type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
	// 上游原始回應，非空時直接寫回
	body []byte
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}

}
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalServer(err.Error())
}

// ✅ 用戶端錯誤 (400 系列)
func ValidateErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_BODY, "validation-error", errorDesc)
}

func BadRequestBody(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_BODY, "bad-request-body", errorDesc)
}

func MissingFile(errorDesc string) *Error {
	return New(http.StatusBadRequest, MISSING_FILE, "validation-error", errorDesc)
}

func EmptyFile(errorDesc string) *Error {
	return New(http.StatusBadRequest, EMPTY_FILE, "validation-error", errorDesc)
}

// ✅ 權限錯誤 (401, 403)
func Unauthorized(errorDesc string, errorCode ...int) *Error {
	errCode := UNAUTHORIZED
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusUnauthorized, errCode, "authorization-error", errorDesc)
}

func Forbidden(errorDesc string) *Error {
	return New(http.StatusForbidden, FORBIDDEN, "forbidden", errorDesc)
}

// ✅ 資源 (404, 405)
func NotFound(errorDesc string) *Error {
	return New(http.StatusNotFound, NOT_FOUND, "not-found", errorDesc)
}

func MethodNotAllowed(errorDesc string) *Error {
	return New(http.StatusMethodNotAllowed, METHOD_NOT_ALLOWED, "method-not-allowed", errorDesc)
}

// ✅ 伺服器內部錯誤 (500 系列)
func InternalServer(errorDesc string) *Error {
	return New(http.StatusInternalServerError, INTERNAL_ERROR, "internal-server-error", errorDesc)
}

func StorageError(errorDesc string) *Error {
	return New(http.StatusInternalServerError, STORAGE_ERROR, "storage-error", errorDesc)
}

func ServiceUnavailable(errorDesc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable", errorDesc)
}

// ConfigurationError 伺服器缺少必要設定（金鑰、token），屬於營運端錯誤
func ConfigurationError(errorDesc string, httpCode ...int) *Error {
	status := http.StatusInternalServerError
	if len(httpCode) > 0 {
		status = httpCode[0]
	}
	return New(status, CONFIGURATION_ERROR, "configuration-error", errorDesc)
}

func ProxyTokenMissing(httpCode int) *Error {
	return New(httpCode, PROXY_TOKEN_MISSING, "configuration-error", "Proxy token is not configured on the server.")
}

// NetworkError 上游無法連線；原始錯誤只寫 log，不回給呼叫端
func NetworkError() *Error {
	return New(http.StatusInternalServerError, UPSTREAM_NETWORK_ERROR, "network-error", "Upstream service unavailable")
}

// ✅ 外部 API 錯誤 (502, 504)

// UpstreamError 上游非 2xx：沿用原狀態碼並帶回整理後的 body
func UpstreamError(status int, body []byte) *Error {
	e := New(status, EXTERNAL_REQUEST_ERROR, "upstream-error", http.StatusText(status))
	e.body = body
	return e
}

func ExternalResponseFormatError(errorDesc string) *Error {
	return New(http.StatusBadGateway, EXTERNAL_RESPONSE_FORMAT_ERROR, "parse-error", errorDesc)
}

func GatewayTimeout(errorDesc string) *Error {
	return New(http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout", errorDesc)
}

func (e *Error) HttpCode() int {
	return e.httpCode
}

func (e *Error) ErrorCode() int {
	return e.errorCode
}
func (e *Error) ErrorDesc() string {
	return e.errorDesc
}
func (e *Error) Error() string {
	return e.errorMsg
}

// Body 上游原始錯誤內容（僅 UpstreamError 有值）
func (e *Error) Body() []byte {
	return e.body
}

func MapHttpStatusToError(status int, desc string) *Error {
	switch status {
	case http.StatusBadRequest:
		return BadRequestBody(desc)
	case http.StatusUnauthorized:
		return Unauthorized(desc)
	case http.StatusForbidden:
		return Forbidden(desc)
	case http.StatusNotFound:
		return NotFound(desc)
	case http.StatusMethodNotAllowed:
		return MethodNotAllowed(desc)
	case http.StatusServiceUnavailable:
		return ServiceUnavailable(desc)
	case http.StatusGatewayTimeout:
		return GatewayTimeout(desc)
	default:
		return InternalServer(desc)
	}
}
