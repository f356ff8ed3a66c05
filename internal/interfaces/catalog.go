package interfaces

import (
	"context"
	"encoding/json"

	"GameShelfSync/internal/igdb"
)

// CatalogClient 目录客户端接口（查询协议见igdb包；归一化层只依赖此接口）
type CatalogClient interface {
	// Request 向实体端点发起字段选择查询，返回JSON数组元素（空数组合法）
	Request(ctx context.Context, kind igdb.Kind, query string) ([]json.RawMessage, error)
}

// ImageStore 用户图片存储契约：存入二进制与归属键，返回可访问URL。
// 具体实现（本地盘/对象存储）对收藏层不可见。
type ImageStore interface {
	Store(ctx context.Context, blob []byte, ownerKey string) (string, error)
}
