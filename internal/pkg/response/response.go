package response

import (
	"net/http"
	cErr "voxrelay/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// ErrorDetail 對外錯誤內容
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ErrorResponse 所有非上游錯誤的統一格式
type ErrorResponse struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"requestID,omitempty"`
}

// Success 交給 Response middleware 以原始 JSON 輸出
func Success(c *gin.Context, data any) {
	c.Set("data", data)
	c.Abort()
}

// Raw 直接寫出上游 body（不再經過 JSON 序列化）
func Raw(c *gin.Context, status int, contentType string, body []byte) {
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(status, contentType, body)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, RequestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, ErrorResponse{
		Error: ErrorDetail{
			Message: desc,
			Type:    msg,
			Code:    errorCode,
		},
		RequestID: RequestID,
	})
	c.Abort()
}

func FailByErr(c *gin.Context, RequestID string, err error) {
	v, ok := err.(*cErr.Error)
	if !ok {
		Fail(c, RequestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, "internal-server-error", err.Error())
		return
	}
	if body := v.Body(); len(body) > 0 {
		c.Data(v.HttpCode(), "application/json", body)
		c.Abort()
		return
	}
	Fail(c, RequestID, v.HttpCode(), v.ErrorCode(), v.Error(), v.ErrorDesc())
}
