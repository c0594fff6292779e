package config

import (
	"path/filepath"
	"strings"
)

const (
	StorageDriverFile  = "file"
	StorageDriverMongo = "mongo"

	DefaultStorageDir  = "data"
	DefaultStorageFile = "openai-key.json"
)

type Storage struct {
	// file / mongo
	Driver string `mapstructure:"DRIVER" json:"driver" yaml:"driver"`
	Dir    string `mapstructure:"DIR" env:"OPENAI_API_KEY_STORAGE_DIR" json:"dir" yaml:"dir"`
	File   string `mapstructure:"FILE" env:"OPENAI_API_KEY_STORAGE_FILE" json:"file" yaml:"file"`
	// mongo 模式使用的資料庫名稱
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
}

func (s Storage) DriverOrDefault() string {
	if strings.EqualFold(strings.TrimSpace(s.Driver), StorageDriverMongo) {
		return StorageDriverMongo
	}
	return StorageDriverFile
}

// FilePath 金鑰檔完整路徑；File 為絕對路徑時忽略 Dir
func (s Storage) FilePath() string {
	file := strings.TrimSpace(s.File)
	if file == "" {
		file = DefaultStorageFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	dir := strings.TrimSpace(s.Dir)
	if dir == "" {
		dir = DefaultStorageDir
	}
	return filepath.Join(dir, file)
}
