package service

import (
	"encoding/json"
	"fmt"

	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/model"
)

// nestedRef 复合实体内部的二级引用（如involved_companies.company）。
// 先于复合实体排进写入计划，保证外键在复合实体落库前已存在。
type nestedRef struct {
	field string
	kind  igdb.Kind
}

// relationSpec 聚合根的一条嵌套关系。依赖顺序是数据而非控制流：
// 每个根的relations切片顺序即upsert顺序（叶子→复合→根→关系行）。
type relationSpec struct {
	field  string                               // 原始文档中的JSON字段名
	kind   igdb.Kind                            // 被引用实体类型
	single bool                                 // 单值引用（写根上的FK列，不写关系行）
	nested []nestedRef                          // 复合实体内部引用
	link   func(rootID, subID int64) interface{} // 关系行构造（single时为nil）
}

// rootSpec 聚合根登记项
type rootSpec struct {
	relations []relationSpec
	decode    func(json.RawMessage) (interface{}, error)
}

var gameRelations = []relationSpec{
	{field: "cover", kind: igdb.KindCover, single: true},
	{field: "screenshots", kind: igdb.KindScreenshot, link: func(r, s int64) interface{} {
		return &model.GameScreenshot{GameID: r, ScreenshotID: s}
	}},
	{field: "artworks", kind: igdb.KindArtwork, link: func(r, s int64) interface{} {
		return &model.GameArtwork{GameID: r, ArtworkID: s}
	}},
	{field: "videos", kind: igdb.KindGameVideo, link: func(r, s int64) interface{} {
		return &model.GameVideoLink{GameID: r, VideoID: s}
	}},
	{field: "genres", kind: igdb.KindGenre, link: func(r, s int64) interface{} {
		return &model.GameGenre{GameID: r, GenreID: s}
	}},
	{field: "themes", kind: igdb.KindTheme, link: func(r, s int64) interface{} {
		return &model.GameTheme{GameID: r, ThemeID: s}
	}},
	{field: "keywords", kind: igdb.KindKeyword, link: func(r, s int64) interface{} {
		return &model.GameKeyword{GameID: r, KeywordID: s}
	}},
	{field: "franchises", kind: igdb.KindFranchise, link: func(r, s int64) interface{} {
		return &model.GameFranchise{GameID: r, FranchiseID: s}
	}},
	{field: "game_modes", kind: igdb.KindGameMode, link: func(r, s int64) interface{} {
		return &model.GameGameMode{GameID: r, GameModeID: s}
	}},
	{field: "player_perspectives", kind: igdb.KindPlayerPerspective, link: func(r, s int64) interface{} {
		return &model.GamePlayerPerspective{GameID: r, PlayerPerspectiveID: s}
	}},
	{field: "multiplayer_modes", kind: igdb.KindMultiplayerMode, link: func(r, s int64) interface{} {
		return &model.GameMultiplayerMode{GameID: r, MultiplayerModeID: s}
	}},
	{field: "language_supports", kind: igdb.KindLanguageSupport,
		nested: []nestedRef{
			{field: "language", kind: igdb.KindLanguage},
			{field: "language_support_type", kind: igdb.KindLanguageSupportType},
		},
		link: func(r, s int64) interface{} {
			return &model.GameLanguageSupport{GameID: r, LanguageSupportID: s}
		}},
	{field: "release_dates", kind: igdb.KindReleaseDate,
		nested: []nestedRef{
			{field: "platform", kind: igdb.KindPlatform},
		},
		link: func(r, s int64) interface{} {
			return &model.GameReleaseDate{GameID: r, ReleaseDateID: s}
		}},
	{field: "involved_companies", kind: igdb.KindInvolvedCompany,
		nested: []nestedRef{
			{field: "company", kind: igdb.KindCompany},
		},
		link: func(r, s int64) interface{} {
			return &model.GameInvolvedCompany{GameID: r, InvolvedCompanyID: s}
		}},
	{field: "age_ratings", kind: igdb.KindAgeRating, link: func(r, s int64) interface{} {
		return &model.GameAgeRating{GameID: r, AgeRatingID: s}
	}},
	{field: "websites", kind: igdb.KindWebsite, link: func(r, s int64) interface{} {
		return &model.GameWebsite{GameID: r, WebsiteID: s}
	}},
	{field: "external_games", kind: igdb.KindExternalGame, link: func(r, s int64) interface{} {
		return &model.GameExternalGame{GameID: r, ExternalGameID: s}
	}},
	{field: "platforms", kind: igdb.KindPlatform, link: func(r, s int64) interface{} {
		return &model.GamePlatform{GameID: r, PlatformID: s}
	}},
}

var platformRelations = []relationSpec{
	{field: "platform_logo", kind: igdb.KindPlatformLogo, single: true},
	{field: "platform_family", kind: igdb.KindPlatformFamily, single: true},
	{field: "platform_type", kind: igdb.KindPlatformType, single: true},
	{field: "versions", kind: igdb.KindPlatformVersion,
		nested: []nestedRef{
			{field: "platform_logo", kind: igdb.KindPlatformLogo},
		},
		link: func(r, s int64) interface{} {
			return &model.PlatformVersionLink{PlatformID: r, VersionID: s}
		}},
}

var platformVersionRelations = []relationSpec{
	{field: "platform_logo", kind: igdb.KindPlatformLogo, single: true},
}

var rootRegistry = map[igdb.Kind]rootSpec{
	igdb.KindGame:            {relations: gameRelations, decode: decodeGame},
	igdb.KindPlatform:        {relations: platformRelations, decode: decodePlatform},
	igdb.KindPlatformVersion: {relations: platformVersionRelations, decode: decodePlatformVersion},
}

// stubBody 为无必填约束的实体构造最小stub对象体（仅含外部ID）
func stubBody(id int64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"id":%d}`, id))
}
