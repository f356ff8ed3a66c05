package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/interfaces"
	"GameShelfSync/internal/model"
	"GameShelfSync/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CollectionService 收藏物化器：在用户把一个游戏加入收藏的那一刻，
// 从归一化图里拷出固定的一组展示字段生成快照行。快照之后不随目录
// 更新重刷；同一（用户，游戏）重复调用会生成第二条独立条目。
type CollectionService struct {
	games   repository.GameRepository
	entries repository.CollectionRepository
	images  interfaces.ImageStore
	logger  *logrus.Logger
}

func NewCollectionService(db *gorm.DB, images interfaces.ImageStore, logger *logrus.Logger) *CollectionService {
	return &CollectionService{
		games:   repository.NewGameRepository(db),
		entries: repository.NewCollectionRepository(db),
		images:  images,
		logger:  logger,
	}
}

// EntryInput 用户自填的收藏元数据
type EntryInput struct {
	PlatformID   int64      `json:"platform_id"`
	Condition    string     `json:"condition"`
	Price        float64    `json:"price"`
	PurchaseDate *time.Time `json:"purchase_date"`
	IsPhysical   bool       `json:"is_physical"`
	HasBox       bool       `json:"has_box"`
	HasManual    bool       `json:"has_manual"`
	Notes        string     `json:"notes"`
	LocationID   *uint64    `json:"location_id"`
	Photos       [][]byte   `json:"photos"` // 原始图片字节（经图片存储换URL）
}

// Materialize 生成收藏条目。游戏必须已归一化入库；评分取值偏好：
// total_rating > aggregated_rating > rating。
func (s *CollectionService) Materialize(ctx context.Context, userID uint64, gameID int64, in *EntryInput) (*model.CollectionEntry, error) {
	game, err := s.games.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("游戏%d未入库，请先同步: %w", gameID, err)
	}

	// 校验存放位置归属
	if in.LocationID != nil {
		loc, err := s.entries.GetLocationByID(ctx, *in.LocationID)
		if err != nil {
			return nil, fmt.Errorf("存放位置%d不存在: %w", *in.LocationID, err)
		}
		if loc.UserID != userID {
			return nil, fmt.Errorf("存放位置%d不属于当前用户", *in.LocationID)
		}
	}

	entryUUID := uuid.NewString()

	entry := &model.CollectionEntry{
		EntryUUID:    entryUUID,
		UserID:       userID,
		GameID:       game.ID,
		PlatformID:   in.PlatformID,
		Title:        game.Name,
		CoverURL:     s.coverURL(ctx, game),
		Rating:       pickRating(game),
		GenreNames:   s.genreNames(ctx, game.ID),
		Condition:    in.Condition,
		Price:        in.Price,
		PurchaseDate: in.PurchaseDate,
		IsPhysical:   in.IsPhysical,
		HasBox:       in.HasBox,
		HasManual:    in.HasManual,
		Notes:        in.Notes,
		LocationID:   in.LocationID,
		Photos:       s.storePhotos(ctx, userID, entryUUID, in.Photos),
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("保存收藏条目失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "game_id": gameID, "entry": entryUUID}).
		Info("收藏条目已创建")
	return entry, nil
}

// ListEntries 分页查询用户收藏
func (s *CollectionService) ListEntries(ctx context.Context, userID uint64, page, pageSize int) ([]*model.CollectionEntry, int64, error) {
	return s.entries.ListEntriesByUser(ctx, userID, page, pageSize)
}

// GetEntry 按UUID取条目并校验归属
func (s *CollectionService) GetEntry(ctx context.Context, userID uint64, entryUUID string) (*model.CollectionEntry, error) {
	entry, err := s.entries.GetEntryByUUID(ctx, entryUUID)
	if err != nil {
		return nil, fmt.Errorf("收藏条目不存在: %w", err)
	}
	if entry.UserID != userID {
		return nil, fmt.Errorf("收藏条目%s不属于当前用户", entryUUID)
	}
	return entry, nil
}

// coverURL 从封面image_id构造图片URL（封面缺失时留空，不视为错误）
func (s *CollectionService) coverURL(ctx context.Context, game *model.Game) string {
	if game.CoverID == 0 {
		return ""
	}
	cover, err := s.games.GetCoverByID(ctx, int64(game.CoverID))
	if err != nil {
		s.logger.WithField("cover_id", game.CoverID).Warnf("封面记录缺失: %v", err)
		return ""
	}
	if cover.ImageID != "" {
		return igdb.ImageURL(cover.ImageID)
	}
	return cover.URL
}

// genreNames 快照分类名列表（JSON数组）
func (s *CollectionService) genreNames(ctx context.Context, gameID int64) datatypes.JSON {
	genres, err := s.games.GetGameGenres(ctx, gameID)
	if err != nil {
		s.logger.WithField("game_id", gameID).Warnf("查询分类失败: %v", err)
		return datatypes.JSON("[]")
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	b, err := json.Marshal(names)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return b
}

// storePhotos 把用户照片送入图片存储，失败的单张跳过（记警告）
func (s *CollectionService) storePhotos(ctx context.Context, userID uint64, entryUUID string, photos [][]byte) datatypes.JSON {
	urls := make([]string, 0, len(photos))
	for i, blob := range photos {
		if len(blob) == 0 {
			continue
		}
		ownerKey := fmt.Sprintf("%d/%s/%d", userID, entryUUID, i)
		u, err := s.images.Store(ctx, blob, ownerKey)
		if err != nil {
			s.logger.WithField("owner_key", ownerKey).Warnf("照片存储失败，跳过: %v", err)
			continue
		}
		urls = append(urls, u)
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return b
}

// pickRating 评分取值偏好：综合分>媒体分>用户分
func pickRating(g *model.Game) float64 {
	if g.TotalRating > 0 {
		return g.TotalRating
	}
	if g.AggregatedRating > 0 {
		return g.AggregatedRating
	}
	return g.Rating
}
