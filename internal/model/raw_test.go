package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 同一个引用字段在不同文档里可能是数字、也可能是展开后的对象
func TestRefIDUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want RefID
	}{
		{`7`, 7},
		{`{"id": 7, "name": "whatever"}`, 7},
		{`null`, 0},
	}
	for _, c := range cases {
		var id RefID
		require.NoError(t, json.Unmarshal([]byte(c.in), &id), "输入: %s", c.in)
		assert.Equal(t, c.want, id, "输入: %s", c.in)
	}

	var id RefID
	assert.Error(t, json.Unmarshal([]byte(`"not-a-ref"`), &id))
}

func TestRawRefUnmarshal(t *testing.T) {
	var bare RawRef
	require.NoError(t, json.Unmarshal([]byte(`42`), &bare))
	assert.Equal(t, int64(42), bare.ID)
	assert.True(t, bare.IsBare())

	var full RawRef
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "name": "Valve"}`), &full))
	assert.Equal(t, int64(42), full.ID)
	assert.False(t, full.IsBare())
	assert.JSONEq(t, `{"id": 42, "name": "Valve"}`, string(full.Body))
}

func TestSplitDocument(t *testing.T) {
	fields, err := SplitDocument(json.RawMessage(`{"id": 1, "genres": [5, 6], "name": "x"}`))
	require.NoError(t, err)
	assert.Len(t, fields, 3)
	assert.JSONEq(t, `[5, 6]`, string(fields["genres"]))

	_, err = SplitDocument(json.RawMessage(`[1, 2]`))
	assert.Error(t, err)
}
