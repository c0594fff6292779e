package path

import (
	"path/filepath"
	"runtime"
)

// RootPath 傳回專案根目錄的絕對路徑（/project/utils/path/path.go → /project）
func RootPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("無法取得 caller 位置")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Resolve 相對路徑接在 base 之下；絕對路徑與空字串原樣回傳
func Resolve(p string, base ...string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(append(base, p)...)
}
