package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RefID 引用字段的"裸ID或完整对象"联合形态。目录返回的嵌套引用
// 既可能是数字ID，也可能是带id的对象体；两种形态都解析成本地外键值。
type RefID int64

func (r *RefID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*r = 0
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("解析对象形引用失败: %w", err)
		}
		*r = RefID(obj.ID)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("解析数字形引用失败: %w", err)
	}
	*r = RefID(n)
	return nil
}

// RawRef 嵌套引用的原始形态：裸ID时Body为nil，对象形态时Body保留原文
// 供归一化器（或Stub Resolver补齐后）继续解码。
type RawRef struct {
	ID   int64
	Body json.RawMessage
}

func (r *RawRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		r.ID = 0
		r.Body = nil
		return nil
	}
	if b[0] == '{' {
		var obj struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return fmt.Errorf("解析对象形引用失败: %w", err)
		}
		r.ID = obj.ID
		r.Body = append(json.RawMessage(nil), b...)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("解析数字形引用失败: %w", err)
	}
	r.ID = n
	r.Body = nil
	return nil
}

// IsBare 是否为裸ID引用（没有对象体）
func (r *RawRef) IsBare() bool {
	return r.Body == nil
}

// SplitDocument 把原始文档按顶层字段拆开，供关系遍历按字段名取嵌套引用
func SplitDocument(doc json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("拆分原始文档失败: %w", err)
	}
	return fields, nil
}
