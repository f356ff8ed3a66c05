package repository

import (
	"context"

	"GameShelfSync/internal/model"

	"gorm.io/gorm"
)

// GameFilter 列表筛选条件
type GameFilter struct {
	Slug       string // 精确slug
	NameLike   string // 名称模糊匹配
	PlatformID int64  // 按平台过滤（经game_platforms关系表）
}

// GameRepository 面向展示与快照取数的查询仓储
type GameRepository interface {
	// ListGames 按过滤条件分页查询游戏
	ListGames(ctx context.Context, filter GameFilter, page, pageSize int) ([]*model.Game, int64, error)
	// GetGameByID 通过外部目录ID获取游戏
	GetGameByID(ctx context.Context, gameID int64) (*model.Game, error)
	// GetGameGenres 经关系表取游戏的分类列表
	GetGameGenres(ctx context.Context, gameID int64) ([]*model.Genre, error)
	// GetCoverByID 获取封面图片记录
	GetCoverByID(ctx context.Context, coverID int64) (*model.Cover, error)
	// GetPlatformByID 获取平台记录
	GetPlatformByID(ctx context.Context, platformID int64) (*model.Platform, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) ListGames(ctx context.Context, filter GameFilter, page, pageSize int) ([]*model.Game, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.Game{})
	if filter.Slug != "" {
		db = db.Where("slug = ?", filter.Slug)
	}
	if filter.NameLike != "" {
		db = db.Where("name ILIKE ?", "%"+filter.NameLike+"%")
	}
	if filter.PlatformID != 0 {
		db = db.Joins("JOIN game_platforms ON game_platforms.game_id = games.id").
			Where("game_platforms.platform_id = ?", filter.PlatformID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var games []*model.Game
	if err := db.
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

func (r *gameRepository) GetGameByID(ctx context.Context, gameID int64) (*model.Game, error) {
	var g model.Game
	if err := r.db.WithContext(ctx).Where("id = ?", gameID).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) GetGameGenres(ctx context.Context, gameID int64) ([]*model.Genre, error) {
	var genres []*model.Genre
	if err := r.db.WithContext(ctx).Model(&model.Genre{}).
		Joins("JOIN game_genres ON game_genres.genre_id = genres.id").
		Where("game_genres.game_id = ?", gameID).
		Order("genres.name ASC").
		Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *gameRepository) GetCoverByID(ctx context.Context, coverID int64) (*model.Cover, error) {
	var c model.Cover
	if err := r.db.WithContext(ctx).Where("id = ?", coverID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gameRepository) GetPlatformByID(ctx context.Context, platformID int64) (*model.Platform, error) {
	var p model.Platform
	if err := r.db.WithContext(ctx).Where("id = ?", platformID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
