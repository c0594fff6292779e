package audio

import (
	"mime"
	"mime/multipart"
	"path"
	"strings"

	cErr "voxrelay/internal/pkg/error"
)

const (
	DefaultMimeType  = "audio/webm"
	DefaultExtension = ".webm"
	rebuiltBaseName  = "audio"
)

// 副檔名對應 MIME；比對時取最長的後綴
var extensionMimeTypes = map[string]string{
	".webm": "audio/webm",
	".weba": "audio/webm",
	".opus": "audio/ogg",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".mp3":  "audio/mpeg",
	".mpga": "audio/mpeg",
	".mpeg": "audio/mpeg",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".aac":  "audio/aac",
	".wav":  "audio/wav",
	".flac": "audio/flac",
}

// MIME 反查副檔名，用於重建檔名
var mimeExtensions = map[string]string{
	"audio/webm":   ".webm",
	"audio/ogg":    ".ogg",
	"audio/opus":   ".opus",
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/mp4":    ".m4a",
	"audio/x-m4a":  ".m4a",
	"audio/aac":    ".aac",
	"audio/wav":    ".wav",
	"audio/x-wav":  ".wav",
	"audio/wave":   ".wav",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
}

// 不足以判斷格式的 Content-Type
var genericMimeTypes = map[string]struct{}{
	"":                         {},
	"application/octet-stream": {},
	"binary/octet-stream":      {},
	"audio/*":                  {},
}

// Upload 正規化後的上傳檔
type Upload struct {
	Filename string
	MimeType string
	Size     int64
	Rebuilt  bool
	header   *multipart.FileHeader
}

func (u *Upload) Open() (multipart.File, error) {
	return u.header.Open()
}

// NormalizeUpload 推斷 MIME 並在檔名不可用時重建為 audio<ext>
func NormalizeUpload(header *multipart.FileHeader) (*Upload, error) {
	if header == nil {
		return nil, cErr.MissingFile("Missing audio file.")
	}
	if header.Size <= 0 {
		return nil, cErr.EmptyFile("Audio file is empty.")
	}

	declared := declaredMimeType(header.Header.Get("Content-Type"))
	mimeType := InferMimeType(header.Filename, declared)

	filename := strings.TrimSpace(header.Filename)
	if base := path.Base(strings.ReplaceAll(filename, "\\", "/")); base != "." && base != "/" {
		filename = base
	} else {
		filename = ""
	}
	nameChanged := false
	if filename == "" || matchExtension(filename) == "" {
		filename = rebuiltBaseName + ExtensionFor(mimeType)
		nameChanged = true
	}

	return &Upload{
		Filename: filename,
		MimeType: mimeType,
		Size:     header.Size,
		Rebuilt:  nameChanged || mimeType != declared,
		header:   header,
	}, nil
}

// InferMimeType 明確型別 → 副檔名 → 預設 audio/webm
func InferMimeType(filename, declared string) string {
	declared = declaredMimeType(declared)
	if _, generic := genericMimeTypes[declared]; !generic {
		return declared
	}
	if ext := matchExtension(filename); ext != "" {
		return extensionMimeTypes[ext]
	}
	return DefaultMimeType
}

// ExtensionFor 未知型別回傳 .webm
func ExtensionFor(mimeType string) string {
	if ext, ok := mimeExtensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return DefaultExtension
}

func declaredMimeType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	mediaType = strings.ToLower(mediaType)
	// 瀏覽器錄音常標成 video/webm
	if mediaType == "video/webm" {
		return "audio/webm"
	}
	return mediaType
}

func matchExtension(filename string) string {
	lower := strings.ToLower(strings.TrimSpace(filename))
	best := ""
	for ext := range extensionMimeTypes {
		if strings.HasSuffix(lower, ext) && len(ext) > len(best) && len(lower) > len(ext) {
			best = ext
		}
	}
	return best
}
