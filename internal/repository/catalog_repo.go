package repository

import (
	"context"
	"fmt"

	"GameShelfSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository 归一化存储接口：按外部ID upsert实体、幂等写关系行、
// 事务分组。归一化器只通过这里落库。
type CatalogRepository interface {
	// WithTx 在单个事务内执行fn；fn返回错误则整体回滚
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
	// UpsertEntity 按主键id create-or-update（幂等，后写覆盖全部标量字段；
	// 仅限完整文档——聚合根）
	UpsertEntity(ctx context.Context, tx *gorm.DB, entity interface{}) error
	// UpsertEntityColumns 按主键id create-or-update，冲突时只覆盖columns列；
	// columns为空（纯stub）时保留已有行不动
	UpsertEntityColumns(ctx context.Context, tx *gorm.DB, entity interface{}, columns []string) error
	// LinkRelation 写关系行，组合键冲突时no-op（幂等插入）
	LinkRelation(ctx context.Context, tx *gorm.DB, link interface{}) error
	// DeleteGame 删除聚合根：根行+关系行+收藏条目；子实体保留（不级联）
	DeleteGame(ctx context.Context, gameID int64) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

func (r *catalogRepository) UpsertEntity(ctx context.Context, tx *gorm.DB, entity interface{}) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(entity).Error
}

func (r *catalogRepository) UpsertEntityColumns(ctx context.Context, tx *gorm.DB, entity interface{}, columns []string) error {
	db := tx
	if db == nil {
		db = r.db
	}
	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}
	if len(columns) > 0 {
		conflict.DoNothing = false
		conflict.DoUpdates = clause.AssignmentColumns(columns)
	}
	return db.WithContext(ctx).Clauses(conflict).Create(entity).Error
}

func (r *catalogRepository) LinkRelation(ctx context.Context, tx *gorm.DB, link interface{}) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
}

// DeleteGame 本地移除一个游戏：只删根、关系行和收藏条目，
// 子实体（分类/图片/公司等）可能被其他根引用，保留。
func (r *catalogRepository) DeleteGame(ctx context.Context, gameID int64) error {
	return r.WithTx(ctx, func(tx *gorm.DB) error {
		links := []interface{}{
			&model.GameGenre{}, &model.GameTheme{}, &model.GameKeyword{},
			&model.GameFranchise{}, &model.GameGameMode{}, &model.GamePlayerPerspective{},
			&model.GameScreenshot{}, &model.GameArtwork{}, &model.GameVideoLink{},
			&model.GameWebsite{}, &model.GameExternalGame{}, &model.GameReleaseDate{},
			&model.GameAgeRating{}, &model.GameInvolvedCompany{}, &model.GameMultiplayerMode{},
			&model.GameLanguageSupport{}, &model.GamePlatform{},
		}
		for _, l := range links {
			if err := tx.Where("game_id = ?", gameID).Delete(l).Error; err != nil {
				return fmt.Errorf("删除关系行失败: %w", err)
			}
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&model.CollectionEntry{}).Error; err != nil {
			return fmt.Errorf("删除收藏条目失败: %w", err)
		}
		if err := tx.Where("id = ?", gameID).Delete(&model.Game{}).Error; err != nil {
			return fmt.Errorf("删除游戏根失败: %w", err)
		}
		return nil
	})
}
