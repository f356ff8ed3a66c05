package model

import (
	"time"

	"gorm.io/datatypes"
)

// 统一约定：所有目录实体的本地主键等于外部目录的数字ID（绝不本地生成），
// 这样按ID upsert全局幂等，裸引用也能先落库后补齐而无需键重映射。

// ========== 聚合根 ==========

// Game 游戏聚合根，raw_document整份保存原始文档（每次同步整体覆盖）
type Game struct {
	ID               int64          `gorm:"primaryKey;column:id" json:"id"`
	Name             string         `gorm:"column:name;type:varchar(512);not null" json:"name"`
	Slug             string         `gorm:"column:slug;type:varchar(512);index" json:"slug"`
	Summary          string         `gorm:"column:summary;type:text" json:"summary"`
	Storyline        string         `gorm:"column:storyline;type:text" json:"storyline"`
	Category         int            `gorm:"column:category" json:"category"`
	Status           int            `gorm:"column:status" json:"status"`
	FirstReleaseDate int64          `gorm:"column:first_release_date" json:"first_release_date"` // Unix时间戳
	Rating           float64        `gorm:"column:rating" json:"rating"`                         // 用户评分（0-100）
	RatingCount      int            `gorm:"column:rating_count" json:"rating_count"`
	AggregatedRating float64        `gorm:"column:aggregated_rating" json:"aggregated_rating"` // 媒体评分
	TotalRating      float64        `gorm:"column:total_rating" json:"total_rating"`
	TotalRatingCount int            `gorm:"column:total_rating_count" json:"total_rating_count"`
	VersionTitle     string         `gorm:"column:version_title;type:varchar(256)" json:"version_title"`
	URL              string         `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum         string         `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
	CoverID          RefID          `gorm:"column:cover_id" json:"cover"`
	RawDocument      datatypes.JSON `gorm:"column:raw_document;type:jsonb" json:"-"` // 原始文档副本（排障用）
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// Platform 平台聚合根
type Platform struct {
	ID               int64          `gorm:"primaryKey;column:id" json:"id"`
	Name             string         `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Abbreviation     string         `gorm:"column:abbreviation;type:varchar(64)" json:"abbreviation"`
	AlternativeName  string         `gorm:"column:alternative_name;type:varchar(256)" json:"alternative_name"`
	Generation       int            `gorm:"column:generation" json:"generation"`
	Slug             string         `gorm:"column:slug;type:varchar(256);index" json:"slug"`
	Summary          string         `gorm:"column:summary;type:text" json:"summary"`
	URL              string         `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum         string         `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
	PlatformFamilyID RefID          `gorm:"column:platform_family_id" json:"platform_family"`
	PlatformTypeID   RefID          `gorm:"column:platform_type_id" json:"platform_type"`
	PlatformLogoID   RefID          `gorm:"column:platform_logo_id" json:"platform_logo"`
	RawDocument      datatypes.JSON `gorm:"column:raw_document;type:jsonb" json:"-"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// PlatformVersion 平台版本聚合根（主机改款等）
type PlatformVersion struct {
	ID             int64          `gorm:"primaryKey;column:id" json:"id"`
	Name           string         `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug           string         `gorm:"column:slug;type:varchar(256);index" json:"slug"`
	Summary        string         `gorm:"column:summary;type:text" json:"summary"`
	Connectivity   string         `gorm:"column:connectivity;type:varchar(256)" json:"connectivity"`
	CPU            string         `gorm:"column:cpu;type:varchar(256)" json:"cpu"`
	Graphics       string         `gorm:"column:graphics;type:varchar(256)" json:"graphics"`
	Memory         string         `gorm:"column:memory;type:varchar(256)" json:"memory"`
	OS             string         `gorm:"column:os;type:varchar(256)" json:"os"`
	Media          string         `gorm:"column:media;type:varchar(256)" json:"media"`
	Output         string         `gorm:"column:output;type:varchar(256)" json:"output"`
	Resolutions    string         `gorm:"column:resolutions;type:varchar(256)" json:"resolutions"`
	Sound          string         `gorm:"column:sound;type:varchar(256)" json:"sound"`
	Storage        string         `gorm:"column:storage;type:varchar(256)" json:"storage"`
	URL            string         `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum       string         `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
	PlatformLogoID RefID          `gorm:"column:platform_logo_id" json:"platform_logo"`
	RawDocument    datatypes.JSON `gorm:"column:raw_document;type:jsonb" json:"-"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Game) TableName() string            { return "games" }
func (Platform) TableName() string        { return "platforms" }
func (PlatformVersion) TableName() string { return "platform_versions" }

// ========== 图片类叶子实体（封面/截图/原画/公司logo/平台logo，结构一致） ==========

type Cover struct {
	ID           int64  `gorm:"primaryKey;column:id" json:"id"`
	AlphaChannel bool   `gorm:"column:alpha_channel" json:"alpha_channel"`
	Animated     bool   `gorm:"column:animated" json:"animated"`
	Width        int    `gorm:"column:width" json:"width"`
	Height       int    `gorm:"column:height" json:"height"`
	ImageID      string `gorm:"column:image_id;type:varchar(64)" json:"image_id"`
	URL          string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum     string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type Screenshot struct {
	ID           int64  `gorm:"primaryKey;column:id" json:"id"`
	AlphaChannel bool   `gorm:"column:alpha_channel" json:"alpha_channel"`
	Animated     bool   `gorm:"column:animated" json:"animated"`
	Width        int    `gorm:"column:width" json:"width"`
	Height       int    `gorm:"column:height" json:"height"`
	ImageID      string `gorm:"column:image_id;type:varchar(64)" json:"image_id"`
	URL          string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum     string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type Artwork struct {
	ID           int64  `gorm:"primaryKey;column:id" json:"id"`
	AlphaChannel bool   `gorm:"column:alpha_channel" json:"alpha_channel"`
	Animated     bool   `gorm:"column:animated" json:"animated"`
	Width        int    `gorm:"column:width" json:"width"`
	Height       int    `gorm:"column:height" json:"height"`
	ImageID      string `gorm:"column:image_id;type:varchar(64)" json:"image_id"`
	URL          string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum     string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type CompanyLogo struct {
	ID           int64  `gorm:"primaryKey;column:id" json:"id"`
	AlphaChannel bool   `gorm:"column:alpha_channel" json:"alpha_channel"`
	Animated     bool   `gorm:"column:animated" json:"animated"`
	Width        int    `gorm:"column:width" json:"width"`
	Height       int    `gorm:"column:height" json:"height"`
	ImageID      string `gorm:"column:image_id;type:varchar(64)" json:"image_id"`
	URL          string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum     string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type PlatformLogo struct {
	ID           int64  `gorm:"primaryKey;column:id" json:"id"`
	AlphaChannel bool   `gorm:"column:alpha_channel" json:"alpha_channel"`
	Animated     bool   `gorm:"column:animated" json:"animated"`
	Width        int    `gorm:"column:width" json:"width"`
	Height       int    `gorm:"column:height" json:"height"`
	ImageID      string `gorm:"column:image_id;type:varchar(64)" json:"image_id"`
	URL          string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum     string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

func (Cover) TableName() string        { return "covers" }
func (Screenshot) TableName() string   { return "screenshots" }
func (Artwork) TableName() string      { return "artworks" }
func (CompanyLogo) TableName() string  { return "company_logos" }
func (PlatformLogo) TableName() string { return "platform_logos" }

// ========== 分类实体（name为必填约束，裸引用需Stub Resolver补齐） ==========

type Genre struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(256)" json:"slug"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type Theme struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(256)" json:"slug"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type Keyword struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(256)" json:"slug"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type Franchise struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(256)" json:"slug"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type GameMode struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(256)" json:"slug"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type PlayerPerspective struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(256)" json:"slug"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type Company struct {
	ID          int64  `gorm:"primaryKey;column:id" json:"id"`
	Name        string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug        string `gorm:"column:slug;type:varchar(256)" json:"slug"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Country     int    `gorm:"column:country" json:"country"`
	StartDate   int64  `gorm:"column:start_date" json:"start_date"`
	LogoID      RefID  `gorm:"column:logo_id" json:"logo"`
	URL         string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum    string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type PlatformFamily struct {
	ID   int64  `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	Slug string `gorm:"column:slug;type:varchar(256)" json:"slug"`
}

// PlatformTypeRef 平台形态（主机/掌机/街机等）
type PlatformTypeRef struct {
	ID   int64  `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;type:varchar(256);not null" json:"name"`
}

type Language struct {
	ID         int64  `gorm:"primaryKey;column:id" json:"id"`
	Name       string `gorm:"column:name;type:varchar(256);not null" json:"name"`
	NativeName string `gorm:"column:native_name;type:varchar(256)" json:"native_name"`
	Locale     string `gorm:"column:locale;type:varchar(32)" json:"locale"`
}

type LanguageSupportType struct {
	ID   int64  `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;type:varchar(256);not null" json:"name"`
}

func (Genre) TableName() string               { return "genres" }
func (Theme) TableName() string               { return "themes" }
func (Keyword) TableName() string             { return "keywords" }
func (Franchise) TableName() string           { return "franchises" }
func (GameMode) TableName() string            { return "game_modes" }
func (PlayerPerspective) TableName() string   { return "player_perspectives" }
func (Company) TableName() string             { return "companies" }
func (PlatformFamily) TableName() string      { return "platform_families" }
func (PlatformTypeRef) TableName() string     { return "platform_types" }
func (Language) TableName() string            { return "languages" }
func (LanguageSupportType) TableName() string { return "language_support_types" }

// ========== 复合实体 ==========

// MultiplayerMode 多人模式能力开关
type MultiplayerMode struct {
	ID                int64  `gorm:"primaryKey;column:id" json:"id"`
	CampaignCoop      bool   `gorm:"column:campaign_coop" json:"campaigncoop"`
	DropIn            bool   `gorm:"column:drop_in" json:"dropin"`
	LANCoop           bool   `gorm:"column:lan_coop" json:"lancoop"`
	OfflineCoop       bool   `gorm:"column:offline_coop" json:"offlinecoop"`
	OfflineCoopMax    int    `gorm:"column:offline_coop_max" json:"offlinecoopmax"`
	OfflineMax        int    `gorm:"column:offline_max" json:"offlinemax"`
	OnlineCoop        bool   `gorm:"column:online_coop" json:"onlinecoop"`
	OnlineCoopMax     int    `gorm:"column:online_coop_max" json:"onlinecoopmax"`
	OnlineMax         int    `gorm:"column:online_max" json:"onlinemax"`
	Splitscreen       bool   `gorm:"column:splitscreen" json:"splitscreen"`
	SplitscreenOnline bool   `gorm:"column:splitscreen_online" json:"splitscreenonline"`
	Checksum          string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

// ReleaseDate 发售日期（含地区与人类可读串；platform为二级引用，可能是裸ID）
type ReleaseDate struct {
	ID         int64  `gorm:"primaryKey;column:id" json:"id"`
	GameID     RefID  `gorm:"column:game_id;index" json:"game"`
	PlatformID RefID  `gorm:"column:platform_id" json:"platform"`
	Date       int64  `gorm:"column:date" json:"date"` // Unix时间戳
	Human      string `gorm:"column:human;type:varchar(64)" json:"human"`
	Month      int    `gorm:"column:month" json:"m"`
	Year       int    `gorm:"column:year" json:"y"`
	Region     int    `gorm:"column:region" json:"region"`
	Category   int    `gorm:"column:category" json:"category"`
	Checksum   string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

// AgeRating 年龄分级（内容描述符整体存JSON）
type AgeRating struct {
	ID                  int64          `gorm:"primaryKey;column:id" json:"id"`
	Organization        int            `gorm:"column:organization" json:"category"` // 分级机构（ESRB/PEGI等）
	Rating              int            `gorm:"column:rating" json:"rating"`
	RatingCoverURL      string         `gorm:"column:rating_cover_url;type:varchar(512)" json:"rating_cover_url"`
	Synopsis            string         `gorm:"column:synopsis;type:text" json:"synopsis"`
	ContentDescriptions datatypes.JSON `gorm:"column:content_descriptions;type:jsonb" json:"content_descriptions"`
	Checksum            string         `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

// InvolvedCompany 参与公司及角色标记（company为二级引用，常见裸ID）
type InvolvedCompany struct {
	ID         int64  `gorm:"primaryKey;column:id" json:"id"`
	GameID     RefID  `gorm:"column:game_id;index" json:"game"`
	CompanyID  RefID  `gorm:"column:company_id;not null" json:"company"`
	Developer  bool   `gorm:"column:developer" json:"developer"`
	Publisher  bool   `gorm:"column:publisher" json:"publisher"`
	Porting    bool   `gorm:"column:porting" json:"porting"`
	Supporting bool   `gorm:"column:supporting" json:"supporting"`
	Checksum   string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type Website struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Category int    `gorm:"column:category" json:"category"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Trusted  bool   `gorm:"column:trusted" json:"trusted"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type ExternalGame struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Category int    `gorm:"column:category" json:"category"` // 外部平台（Steam/GOG等）
	UID      string `gorm:"column:uid;type:varchar(128)" json:"uid"`
	Name     string `gorm:"column:name;type:varchar(256)" json:"name"`
	URL      string `gorm:"column:url;type:varchar(512)" json:"url"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

type GameVideo struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	Name     string `gorm:"column:name;type:varchar(256)" json:"name"`
	VideoID  string `gorm:"column:video_id;type:varchar(64)" json:"video_id"`
	Checksum string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

// LanguageSupport 语言支持（language与类型均为二级引用）
type LanguageSupport struct {
	ID            int64  `gorm:"primaryKey;column:id" json:"id"`
	GameID        RefID  `gorm:"column:game_id;index" json:"game"`
	LanguageID    RefID  `gorm:"column:language_id" json:"language"`
	SupportTypeID RefID  `gorm:"column:support_type_id" json:"language_support_type"`
	Checksum      string `gorm:"column:checksum;type:varchar(64)" json:"checksum"`
}

func (MultiplayerMode) TableName() string { return "multiplayer_modes" }
func (ReleaseDate) TableName() string     { return "release_dates" }
func (AgeRating) TableName() string       { return "age_ratings" }
func (InvolvedCompany) TableName() string { return "involved_companies" }
func (Website) TableName() string         { return "websites" }
func (ExternalGame) TableName() string    { return "external_games" }
func (GameVideo) TableName() string       { return "game_videos" }
func (LanguageSupport) TableName() string { return "language_supports" }
