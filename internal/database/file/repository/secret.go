package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voxrelay/config"
	"voxrelay/internal/dto"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewSecretRepository)

// SecretRepository 以單一 JSON 檔保存金鑰；每次呼叫都直接讀檔
type SecretRepository struct {
	path string
	now  func() time.Time
}

func NewSecretRepository(config *config.Configuration) *SecretRepository {
	return &SecretRepository{
		path: config.Storage.FilePath(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (repository *SecretRepository) Path() string {
	return repository.path
}

// Read 檔案不存在或金鑰為空時回傳 nil, nil；其餘錯誤原樣往上拋
func (repository *SecretRepository) Read(ctx context.Context) (*dto.StoredSecret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(repository.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}
	var record dto.StoredSecret
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode secret file %s: %w", repository.path, err)
	}
	record.APIKey = strings.TrimSpace(record.APIKey)
	if record.APIKey == "" {
		return nil, nil
	}
	return &record, nil
}

// Write 先寫入同目錄暫存檔再 rename，讀取端不會看到寫一半的內容
func (repository *SecretRepository) Write(ctx context.Context, apiKey string) (_ *dto.StoredSecret, returnedError error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	record := dto.StoredSecret{
		APIKey:    apiKey,
		UpdatedAt: repository.now(),
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(repository.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create secret dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(repository.path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp secret file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if returnedError != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(append(payload, '\n')); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("write temp secret file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("sync temp secret file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp secret file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return nil, fmt.Errorf("chmod temp secret file: %w", err)
	}
	if err := os.Rename(tmpName, repository.path); err != nil {
		return nil, fmt.Errorf("replace secret file: %w", err)
	}
	return &record, nil
}

// Clear 刪除金鑰檔；檔案本來就不存在不算錯誤
func (repository *SecretRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(repository.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove secret file: %w", err)
	}
	return nil
}
