package service

import (
	"fmt"

	"GameShelfSync/internal/igdb"
)

// StubResolutionError 裸引用补齐失败：该子实体与其关系行被跳过（记警告），
// 批次继续——不会因为一个可选子实体拖垮整个归一化事务。
type StubResolutionError struct {
	Kind igdb.Kind
	ID   int64
	Err  error
}

func (e *StubResolutionError) Error() string {
	return fmt.Sprintf("补齐%s/%d失败: %v", e.Kind, e.ID, e.Err)
}

func (e *StubResolutionError) Unwrap() error { return e.Err }

// NormalizationError 原子写入阶段的失败：整个事务已回滚，没有部分写入残留
type NormalizationError struct {
	Kind   igdb.Kind
	RootID int64
	Err    error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("归一化%s/%d失败（事务已回滚）: %v", e.Kind, e.RootID, e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }
