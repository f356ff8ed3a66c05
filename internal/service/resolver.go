package service

import (
	"context"
	"encoding/json"
	"fmt"

	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// StubResolver 裸引用补齐器：嵌套引用只给了数字ID、而本地schema对该类型
// 有必填字段（如name）时，同步拉取完整对象体再入库。
type StubResolver struct {
	api    interfaces.CatalogClient
	logger *logrus.Logger
}

func NewStubResolver(api interfaces.CatalogClient, logger *logrus.Logger) *StubResolver {
	return &StubResolver{api: api, logger: logger}
}

// Resolve 按ID拉取完整实体。字段清单与其他取数路径完全一致（经Query Builder），
// 所以补齐回来的对象不会比正常展开少字段。空数组→ErrNotFound。
func (r *StubResolver) Resolve(ctx context.Context, kind igdb.Kind, id int64) (json.RawMessage, error) {
	query := igdb.BuildQuery(kind, fmt.Sprintf("id = %d", id), 1)
	rows, err := r.api.Request(ctx, kind, query)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s/%d", igdb.ErrNotFound, kind, id)
	}
	r.logger.WithFields(logrus.Fields{"kind": kind, "id": id}).Debug("裸引用补齐成功")
	return rows[0], nil
}
