package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatableColumns(t *testing.T) {
	// 只登记对象体带了的字段
	cols, err := UpdatableColumns(&Cover{}, json.RawMessage(`{"id": 77, "image_id": "co1wyy", "width": 264}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"image_id", "width"}, cols)

	// 引用字段按gorm列名映射（cover → cover_id）
	cols, err = UpdatableColumns(&Game{}, json.RawMessage(`{"id": 42, "name": "Foo", "cover": 77}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"name", "cover_id"}, cols)

	// 纯stub：没有可覆盖的列
	cols, err = UpdatableColumns(&Genre{}, json.RawMessage(`{"id": 5}`))
	require.NoError(t, err)
	assert.Empty(t, cols)

	// json:"-" 的列（raw_document等）永远不经部分文档覆盖
	cols, err = UpdatableColumns(&Game{}, json.RawMessage(`{"id": 42, "raw_document": {}, "created_at": 1}`))
	require.NoError(t, err)
	assert.Empty(t, cols)
}
