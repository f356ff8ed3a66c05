package model

// 关系（join）表：每个（聚合根，子实体类型）对一张表，复合主键
// (root_id, sub_id) 即组合唯一约束；纯链接行，除这对ID外没有独立身份。

type GameGenre struct {
	GameID  int64 `gorm:"primaryKey;column:game_id"`
	GenreID int64 `gorm:"primaryKey;column:genre_id"`
}

type GameTheme struct {
	GameID  int64 `gorm:"primaryKey;column:game_id"`
	ThemeID int64 `gorm:"primaryKey;column:theme_id"`
}

type GameKeyword struct {
	GameID    int64 `gorm:"primaryKey;column:game_id"`
	KeywordID int64 `gorm:"primaryKey;column:keyword_id"`
}

type GameFranchise struct {
	GameID      int64 `gorm:"primaryKey;column:game_id"`
	FranchiseID int64 `gorm:"primaryKey;column:franchise_id"`
}

type GameGameMode struct {
	GameID     int64 `gorm:"primaryKey;column:game_id"`
	GameModeID int64 `gorm:"primaryKey;column:game_mode_id"`
}

type GamePlayerPerspective struct {
	GameID              int64 `gorm:"primaryKey;column:game_id"`
	PlayerPerspectiveID int64 `gorm:"primaryKey;column:player_perspective_id"`
}

type GameScreenshot struct {
	GameID       int64 `gorm:"primaryKey;column:game_id"`
	ScreenshotID int64 `gorm:"primaryKey;column:screenshot_id"`
}

type GameArtwork struct {
	GameID    int64 `gorm:"primaryKey;column:game_id"`
	ArtworkID int64 `gorm:"primaryKey;column:artwork_id"`
}

type GameVideoLink struct {
	GameID  int64 `gorm:"primaryKey;column:game_id"`
	VideoID int64 `gorm:"primaryKey;column:video_id"`
}

type GameWebsite struct {
	GameID    int64 `gorm:"primaryKey;column:game_id"`
	WebsiteID int64 `gorm:"primaryKey;column:website_id"`
}

type GameExternalGame struct {
	GameID         int64 `gorm:"primaryKey;column:game_id"`
	ExternalGameID int64 `gorm:"primaryKey;column:external_game_id"`
}

type GameReleaseDate struct {
	GameID        int64 `gorm:"primaryKey;column:game_id"`
	ReleaseDateID int64 `gorm:"primaryKey;column:release_date_id"`
}

type GameAgeRating struct {
	GameID      int64 `gorm:"primaryKey;column:game_id"`
	AgeRatingID int64 `gorm:"primaryKey;column:age_rating_id"`
}

type GameInvolvedCompany struct {
	GameID            int64 `gorm:"primaryKey;column:game_id"`
	InvolvedCompanyID int64 `gorm:"primaryKey;column:involved_company_id"`
}

type GameMultiplayerMode struct {
	GameID            int64 `gorm:"primaryKey;column:game_id"`
	MultiplayerModeID int64 `gorm:"primaryKey;column:multiplayer_mode_id"`
}

type GameLanguageSupport struct {
	GameID            int64 `gorm:"primaryKey;column:game_id"`
	LanguageSupportID int64 `gorm:"primaryKey;column:language_support_id"`
}

type GamePlatform struct {
	GameID     int64 `gorm:"primaryKey;column:game_id"`
	PlatformID int64 `gorm:"primaryKey;column:platform_id"`
}

type PlatformVersionLink struct {
	PlatformID int64 `gorm:"primaryKey;column:platform_id"`
	VersionID  int64 `gorm:"primaryKey;column:version_id"`
}

func (GameGenre) TableName() string             { return "game_genres" }
func (GameTheme) TableName() string             { return "game_themes" }
func (GameKeyword) TableName() string           { return "game_keywords" }
func (GameFranchise) TableName() string         { return "game_franchises" }
func (GameGameMode) TableName() string          { return "game_game_modes" }
func (GamePlayerPerspective) TableName() string { return "game_player_perspectives" }
func (GameScreenshot) TableName() string        { return "game_screenshots" }
func (GameArtwork) TableName() string           { return "game_artworks" }
func (GameVideoLink) TableName() string         { return "game_video_links" }
func (GameWebsite) TableName() string           { return "game_websites" }
func (GameExternalGame) TableName() string      { return "game_external_games" }
func (GameReleaseDate) TableName() string       { return "game_release_dates" }
func (GameAgeRating) TableName() string         { return "game_age_ratings" }
func (GameInvolvedCompany) TableName() string   { return "game_involved_companies" }
func (GameMultiplayerMode) TableName() string   { return "game_multiplayer_modes" }
func (GameLanguageSupport) TableName() string   { return "game_language_supports" }
func (GamePlatform) TableName() string          { return "game_platforms" }
func (PlatformVersionLink) TableName() string   { return "platform_version_links" }
