package model

import (
	"encoding/json"
	"reflect"
	"strings"
)

// UpdatableColumns 根据对象体里实际出现的字段，算出冲突更新时允许覆盖的列。
// 只登记对象体携带的字段：裸stub（仅id）得到空列表；部分对象体只覆盖自己
// 带了的列——已入库的更完整行不会被更瘦的文档回退。
func UpdatableColumns(entity interface{}, body json.RawMessage) ([]string, error) {
	fields, err := SplitDocument(body)
	if err != nil {
		return nil, err
	}

	t := reflect.TypeOf(entity)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		jsonName := strings.Split(f.Tag.Get("json"), ",")[0]
		if jsonName == "" || jsonName == "-" || jsonName == "id" {
			continue
		}
		if _, ok := fields[jsonName]; !ok {
			continue
		}
		if col := gormColumn(f.Tag.Get("gorm")); col != "" {
			cols = append(cols, col)
		}
	}
	return cols, nil
}

// gormColumn 从gorm标签里取列名
func gormColumn(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}
