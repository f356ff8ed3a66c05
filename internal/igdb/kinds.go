package igdb

// Kind 目录实体类型（值即IGDB端点名）
type Kind string

const (
	// ========== 聚合根 ==========
	KindGame            Kind = "games"
	KindPlatform        Kind = "platforms"
	KindPlatformVersion Kind = "platform_versions"

	// ========== 图片类叶子实体 ==========
	KindCover        Kind = "covers"
	KindScreenshot   Kind = "screenshots"
	KindArtwork      Kind = "artworks"
	KindCompanyLogo  Kind = "company_logos"
	KindPlatformLogo Kind = "platform_logos"

	// ========== 分类实体（name必填） ==========
	KindGenre               Kind = "genres"
	KindTheme               Kind = "themes"
	KindKeyword             Kind = "keywords"
	KindFranchise           Kind = "franchises"
	KindGameMode            Kind = "game_modes"
	KindPlayerPerspective   Kind = "player_perspectives"
	KindCompany             Kind = "companies"
	KindPlatformFamily      Kind = "platform_families"
	KindPlatformType        Kind = "platform_types"
	KindLanguage            Kind = "languages"
	KindLanguageSupportType Kind = "language_support_types"

	// ========== 复合实体 ==========
	KindMultiplayerMode Kind = "multiplayer_modes"
	KindReleaseDate     Kind = "release_dates"
	KindAgeRating       Kind = "age_ratings"
	KindInvolvedCompany Kind = "involved_companies"
	KindWebsite         Kind = "websites"
	KindExternalGame    Kind = "external_games"
	KindGameVideo       Kind = "game_videos"
	KindLanguageSupport Kind = "language_supports"
)

// Endpoint 该实体类型的查询端点路径
func (k Kind) Endpoint() string {
	return "/" + string(k)
}

// 图片基础地址（按image_id拼接封面大图URL）
const imageBaseURL = "https://images.igdb.com/igdb/image/upload/t_cover_big/"

// ImageURL 根据image_id构造可访问的图片URL
func ImageURL(imageID string) string {
	if imageID == "" {
		return ""
	}
	return imageBaseURL + imageID + ".jpg"
}
