package imagestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalStore 本地磁盘图片存储：按内容哈希落盘，返回可经静态路由访问的URL。
// ownerKey 只参与目录划分，不进URL（避免把用户ID暴露在文件名里）。
type LocalStore struct {
	baseDir string
	baseURL string
	logger  *logrus.Logger
}

func NewLocalStore(baseDir, baseURL string, logger *logrus.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建图片目录失败: %w", err)
	}
	return &LocalStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Store 写入图片字节并返回访问URL（内容相同则复用已有文件）
func (s *LocalStore) Store(ctx context.Context, blob []byte, ownerKey string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(blob) == 0 {
		return "", fmt.Errorf("图片内容为空")
	}

	sum := sha256.Sum256(blob)
	name := hex.EncodeToString(sum[:16]) + ".jpg"

	shard := hex.EncodeToString(sum[:1])
	dir := filepath.Join(s.baseDir, shard)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建分片目录失败: %w", err)
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return "", fmt.Errorf("写入图片失败: %w", err)
		}
		s.logger.WithFields(logrus.Fields{"owner": ownerKey, "file": name}).Debug("图片已落盘")
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, shard, name), nil
}
