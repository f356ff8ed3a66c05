package igdb

import (
	"fmt"
	"strings"
)

// scalarFields 每种实体的标量字段清单（字段选择的唯一事实来源）。
// 展开串由FieldList基于这里的清单递归拼接，保证同一种实体
// 无论从哪条路径取到，字段完整性完全一致。
var scalarFields = map[Kind]string{
	KindGame: "id,name,slug,summary,storyline,category,status,first_release_date," +
		"rating,rating_count,aggregated_rating,total_rating,total_rating_count," +
		"version_title,url,checksum",
	KindPlatform:        "id,name,abbreviation,alternative_name,generation,slug,summary,url,checksum",
	KindPlatformVersion: "id,name,slug,summary,connectivity,cpu,graphics,memory,os,media,output,resolutions,sound,storage,url,checksum",

	KindCover:        "id,alpha_channel,animated,width,height,image_id,url,checksum",
	KindScreenshot:   "id,alpha_channel,animated,width,height,image_id,url,checksum",
	KindArtwork:      "id,alpha_channel,animated,width,height,image_id,url,checksum",
	KindCompanyLogo:  "id,alpha_channel,animated,width,height,image_id,url,checksum",
	KindPlatformLogo: "id,alpha_channel,animated,width,height,image_id,url,checksum",

	KindGenre:               "id,name,slug,url,checksum",
	KindTheme:               "id,name,slug,url,checksum",
	KindKeyword:             "id,name,slug,url,checksum",
	KindFranchise:           "id,name,slug,url,checksum",
	KindGameMode:            "id,name,slug,url,checksum",
	KindPlayerPerspective:   "id,name,slug,url,checksum",
	KindCompany:             "id,name,slug,description,country,start_date,logo,url,checksum",
	KindPlatformFamily:      "id,name,slug",
	KindPlatformType:        "id,name",
	KindLanguage:            "id,name,native_name,locale",
	KindLanguageSupportType: "id,name",

	KindMultiplayerMode: "id,campaigncoop,dropin,lancoop,offlinecoop,offlinecoopmax,offlinemax," +
		"onlinecoop,onlinecoopmax,onlinemax,splitscreen,splitscreenonline,checksum",
	KindReleaseDate:     "id,game,platform,date,human,m,y,region,category,checksum",
	KindAgeRating:       "id,category,rating,rating_cover_url,synopsis,content_descriptions,checksum",
	KindInvolvedCompany: "id,game,company,developer,publisher,porting,supporting,checksum",
	KindWebsite:         "id,category,url,trusted,checksum",
	KindExternalGame:    "id,category,uid,name,url,checksum",
	KindGameVideo:       "id,name,video_id,checksum",
	KindLanguageSupport: "id,game,language,language_support_type,checksum",
}

// expansions 聚合根查询时需要一级展开的嵌套关系（关系字段名→被展开的实体类型）。
// 复合实体内部的二级引用（如involved_companies.company）不展开，保持裸ID，
// 由Stub Resolver按需补齐。
type expansion struct {
	field string
	kind  Kind
}

var expansions = map[Kind][]expansion{
	KindGame: {
		{"cover", KindCover},
		{"screenshots", KindScreenshot},
		{"artworks", KindArtwork},
		{"videos", KindGameVideo},
		{"genres", KindGenre},
		{"themes", KindTheme},
		{"keywords", KindKeyword},
		{"franchises", KindFranchise},
		{"game_modes", KindGameMode},
		{"player_perspectives", KindPlayerPerspective},
		{"multiplayer_modes", KindMultiplayerMode},
		{"language_supports", KindLanguageSupport},
		{"release_dates", KindReleaseDate},
		{"involved_companies", KindInvolvedCompany},
		{"age_ratings", KindAgeRating},
		{"websites", KindWebsite},
		{"external_games", KindExternalGame},
		{"platforms", KindPlatform},
	},
	KindPlatform: {
		{"platform_logo", KindPlatformLogo},
		{"platform_family", KindPlatformFamily},
		{"platform_type", KindPlatformType},
		{"versions", KindPlatformVersion},
	},
	KindPlatformVersion: {
		{"platform_logo", KindPlatformLogo},
	},
}

// FieldList 返回该实体类型的完整字段选择串（标量+嵌套展开）。
// 展开部分取被展开实体自己的FieldList加前缀（递归），因此同一种实体
// 无论作为顶层查询、别的根的展开还是Stub补齐，字段清单逐字一致——
// 平台经游戏展开取到时同样带platform_family/platform_logo/versions。
func FieldList(kind Kind) string {
	scalars, ok := scalarFields[kind]
	if !ok {
		return "*"
	}
	exp, ok := expansions[kind]
	if !ok {
		return scalars
	}

	parts := []string{scalars}
	for _, e := range exp {
		for _, f := range strings.Split(FieldList(e.kind), ",") {
			parts = append(parts, e.field+"."+f)
		}
	}
	return strings.Join(parts, ",")
}

// BuildQuery 组装Apicalypse查询：fields …; where …; limit …;
func BuildQuery(kind Kind, where string, limit int) string {
	var b strings.Builder
	b.WriteString("fields ")
	b.WriteString(FieldList(kind))
	b.WriteString("; ")
	if where != "" {
		b.WriteString("where ")
		b.WriteString(where)
		b.WriteString("; ")
	}
	fmt.Fprintf(&b, "limit %d;", limit)
	return b.String()
}

// BuildSearch 组装搜索查询：search "…"; fields …; limit …;
func BuildSearch(kind Kind, term string, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "search %q; ", escapeTerm(term))
	b.WriteString("fields ")
	b.WriteString(FieldList(kind))
	b.WriteString("; ")
	fmt.Fprintf(&b, "limit %d;", limit)
	return b.String()
}

// escapeTerm 去掉搜索词中会破坏查询语法的引号
func escapeTerm(term string) string {
	term = strings.ReplaceAll(term, `"`, ``)
	return strings.ReplaceAll(term, `;`, ``)
}
