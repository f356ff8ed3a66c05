package model

import (
	"time"

	"gorm.io/datatypes"
)

// User 收藏归属者。会话/认证由外部中间件处理，这里只落当前操作者的身份与角色。
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null"`
	Role      string    `gorm:"column:role;type:varchar(32);default:user"` // user/admin，策略判断在外部
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Location 实体收藏的存放位置（书架/箱子等）
type Location struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"column:user_id;index;not null"`
	Name        string    `gorm:"column:name;type:varchar(128);not null"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// CollectionEntry 用户收藏条目：加入收藏那一刻从归一化图里拷出的展示字段快照
// +用户自己的元数据。快照之后不随目录更新重刷（设计如此）。
type CollectionEntry struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	EntryUUID string `gorm:"column:entry_uuid;type:varchar(64);uniqueIndex;not null"` // 对外暴露的条目ID
	UserID    uint64 `gorm:"column:user_id;index;not null"`
	GameID    int64  `gorm:"column:game_id;index;not null"` // 引用games.id（外部目录ID）
	// 用户选择的平台/主机（可为0表示未指定）
	PlatformID int64 `gorm:"column:platform_id"`

	// ===== 加入时快照的展示字段（不回写、不重刷） =====
	Title      string         `gorm:"column:title;type:varchar(512);not null"`
	CoverURL   string         `gorm:"column:cover_url;type:varchar(512)"`
	Rating     float64        `gorm:"column:rating"` // 优先total，其次媒体分，最后用户分
	GenreNames datatypes.JSON `gorm:"column:genre_names;type:jsonb"`

	// ===== 用户自有元数据 =====
	Condition    string         `gorm:"column:condition;type:varchar(32)"` // mint/good/loose等
	Price        float64        `gorm:"column:price;type:numeric(12,2)"`
	PurchaseDate *time.Time     `gorm:"column:purchase_date"`
	IsPhysical   bool           `gorm:"column:is_physical"`
	HasBox       bool           `gorm:"column:has_box"`
	HasManual    bool           `gorm:"column:has_manual"`
	Notes        string         `gorm:"column:notes;type:text"`
	LocationID   *uint64        `gorm:"column:location_id"`
	Photos       datatypes.JSON `gorm:"column:photos;type:jsonb"` // 用户照片URL列表（图片存储返回）

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string            { return "users" }
func (Location) TableName() string        { return "locations" }
func (CollectionEntry) TableName() string { return "collection_entries" }
