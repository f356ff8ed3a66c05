package service

import (
	"encoding/json"
	"fmt"

	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/model"

	"gorm.io/datatypes"
)

// kindSpec 实体类型的入库登记项：是否有name必填约束+原始JSON→模型的解码。
// 每种实体只在这里登记一次，替代按类型重复~25遍的upsert样板。
type kindSpec struct {
	requiresName bool
	decode       func(json.RawMessage) (interface{}, error)
}

// decodeAs 通用解码：原始JSON直接落到带json标签的模型结构上
func decodeAs[T any](raw json.RawMessage) (interface{}, error) {
	m := new(T)
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("解码实体失败: %w", err)
	}
	return m, nil
}

var kindRegistry = map[igdb.Kind]kindSpec{
	// 图片类叶子：裸ID也能入库（无必填约束），后续同步自然补齐
	igdb.KindCover:        {decode: decodeAs[model.Cover]},
	igdb.KindScreenshot:   {decode: decodeAs[model.Screenshot]},
	igdb.KindArtwork:      {decode: decodeAs[model.Artwork]},
	igdb.KindCompanyLogo:  {decode: decodeAs[model.CompanyLogo]},
	igdb.KindPlatformLogo: {decode: decodeAs[model.PlatformLogo]},

	// 分类实体：name必填，裸引用必须先经Stub Resolver补齐
	igdb.KindGenre:               {requiresName: true, decode: decodeAs[model.Genre]},
	igdb.KindTheme:               {requiresName: true, decode: decodeAs[model.Theme]},
	igdb.KindKeyword:             {requiresName: true, decode: decodeAs[model.Keyword]},
	igdb.KindFranchise:           {requiresName: true, decode: decodeAs[model.Franchise]},
	igdb.KindGameMode:            {requiresName: true, decode: decodeAs[model.GameMode]},
	igdb.KindPlayerPerspective:   {requiresName: true, decode: decodeAs[model.PlayerPerspective]},
	igdb.KindCompany:             {requiresName: true, decode: decodeAs[model.Company]},
	igdb.KindPlatformFamily:      {requiresName: true, decode: decodeAs[model.PlatformFamily]},
	igdb.KindPlatformType:        {requiresName: true, decode: decodeAs[model.PlatformTypeRef]},
	igdb.KindLanguage:            {requiresName: true, decode: decodeAs[model.Language]},
	igdb.KindLanguageSupportType: {requiresName: true, decode: decodeAs[model.LanguageSupportType]},

	// 复合实体
	igdb.KindMultiplayerMode: {decode: decodeAs[model.MultiplayerMode]},
	igdb.KindReleaseDate:     {decode: decodeAs[model.ReleaseDate]},
	igdb.KindAgeRating:       {decode: decodeAs[model.AgeRating]},
	igdb.KindInvolvedCompany: {decode: decodeAs[model.InvolvedCompany]},
	igdb.KindWebsite:         {decode: decodeAs[model.Website]},
	igdb.KindExternalGame:    {decode: decodeAs[model.ExternalGame]},
	igdb.KindGameVideo:       {decode: decodeAs[model.GameVideo]},
	igdb.KindLanguageSupport: {decode: decodeAs[model.LanguageSupport]},

	// 聚合根作为子实体出现时（game.platforms / platform.versions）
	igdb.KindPlatform:        {requiresName: true, decode: decodePlatform},
	igdb.KindPlatformVersion: {requiresName: true, decode: decodePlatformVersion},
}

// ========== 聚合根解码（额外保存原始文档副本，每次同步整体覆盖） ==========

func decodeGame(raw json.RawMessage) (interface{}, error) {
	g := &model.Game{}
	if err := json.Unmarshal(raw, g); err != nil {
		return nil, fmt.Errorf("解码游戏失败: %w", err)
	}
	g.RawDocument = datatypes.JSON(raw)
	return g, nil
}

func decodePlatform(raw json.RawMessage) (interface{}, error) {
	p := &model.Platform{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("解码平台失败: %w", err)
	}
	p.RawDocument = datatypes.JSON(raw)
	return p, nil
}

func decodePlatformVersion(raw json.RawMessage) (interface{}, error) {
	v := &model.PlatformVersion{}
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("解码平台版本失败: %w", err)
	}
	v.RawDocument = datatypes.JSON(raw)
	return v, nil
}

// hasName 对象体里是否带非空name（判断能否满足必填约束）
func hasName(raw json.RawMessage) bool {
	var probe struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Name != ""
}

// extractID 取对象体中的外部ID
func extractID(raw json.RawMessage) (int64, error) {
	var probe struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, fmt.Errorf("提取实体ID失败: %w", err)
	}
	if probe.ID == 0 {
		return 0, fmt.Errorf("文档缺少id字段")
	}
	return probe.ID, nil
}
