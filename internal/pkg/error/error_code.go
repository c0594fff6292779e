package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 40099: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY    = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS  = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_HEADERS = 40002 // 400 - 無效的請求標頭
	MISSING_FILE        = 40003 // 400 - 缺少上傳檔案
	EMPTY_FILE          = 40004 // 400 - 上傳檔案為空

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED        = 40100 // 401 - 未授權
	INVALID_PROXY_TOKEN = 40101 // 401 - proxy token 錯誤或缺少
	FORBIDDEN           = 40301 // 403 - 禁止訪問

	// 40400 ~ 40599: 資源錯誤 (404 405 系列)
	NOT_FOUND          = 40400 // 404 - 資源未找到
	METHOD_NOT_ALLOWED = 40500 // 405 - 金鑰由環境變數管理

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR         = 50000 // 500 - 內部錯誤
	STORAGE_ERROR          = 50001 // 500 - 金鑰儲存錯誤
	SERVICE_UNAVAILABLE    = 50002 // 503 - 服務暫停
	CONFIGURATION_ERROR    = 50003 // 500 - 缺少 API Key
	PROXY_TOKEN_MISSING    = 50004 // 500/503 - 未設定 proxy token
	UPSTREAM_NETWORK_ERROR = 50005 // 500 - 上游連線失敗

	// 50200 ~ 50499: 外部請求錯誤 (502 504 系列)
	EXTERNAL_REQUEST_ERROR         = 50200 // 上游非 2xx，狀態碼原樣回傳
	EXTERNAL_RESPONSE_FORMAT_ERROR = 50201 // 502 - 外部 API 回應格式錯誤
	GATEWAY_TIMEOUT                = 50400 // 504 - 外部 API 超時
)
