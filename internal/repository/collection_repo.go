package repository

import (
	"context"

	"GameShelfSync/internal/model"

	"gorm.io/gorm"
)

// CollectionRepository 用户收藏仓储
type CollectionRepository interface {
	// CreateEntry 新建收藏条目（同一游戏重复加入会生成第二条，去重由调用方决定）
	CreateEntry(ctx context.Context, entry *model.CollectionEntry) error
	// ListEntriesByUser 分页查询某用户的收藏
	ListEntriesByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.CollectionEntry, int64, error)
	// GetEntryByUUID 通过对外UUID取条目
	GetEntryByUUID(ctx context.Context, entryUUID string) (*model.CollectionEntry, error)
	// GetLocationByID 取存放位置（校验归属用）
	GetLocationByID(ctx context.Context, locationID uint64) (*model.Location, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) CreateEntry(ctx context.Context, entry *model.CollectionEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *collectionRepository) ListEntriesByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.CollectionEntry, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.CollectionEntry{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*model.CollectionEntry
	if err := db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *collectionRepository) GetEntryByUUID(ctx context.Context, entryUUID string) (*model.CollectionEntry, error) {
	var e model.CollectionEntry
	if err := r.db.WithContext(ctx).Where("entry_uuid = ?", entryUUID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *collectionRepository) GetLocationByID(ctx context.Context, locationID uint64) (*model.Location, error) {
	var l model.Location
	if err := r.db.WithContext(ctx).Where("id = ?", locationID).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}
