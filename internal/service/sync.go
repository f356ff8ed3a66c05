package service

import (
	"context"
	"encoding/json"
	"fmt"

	"GameShelfSync/internal/config"
	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/interfaces"
	"GameShelfSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SyncService 同步入口：取数（目录客户端）→归一化（Normalizer）。
// 每次Sync调用在调用方自己的控制流里同步跑完，没有后台任务池。
type SyncService struct {
	api        interfaces.CatalogClient
	normalizer *Normalizer
	cfg        *config.Config
	logger     *logrus.Logger
}

func NewSyncService(db *gorm.DB, api interfaces.CatalogClient, cfg *config.Config, logger *logrus.Logger) *SyncService {
	repo := repository.NewCatalogRepository(db)
	resolver := NewStubResolver(api, logger)
	return &SyncService{
		api:        api,
		normalizer: NewNormalizer(repo, resolver, logger),
		cfg:        cfg,
		logger:     logger,
	}
}

// SyncGame 按外部目录ID同步一个游戏及其整张实体图
func (s *SyncService) SyncGame(ctx context.Context, igdbID int64) error {
	return s.syncRoot(ctx, igdb.KindGame, igdbID)
}

// SyncPlatform 按外部目录ID同步一个平台（含版本）
func (s *SyncService) SyncPlatform(ctx context.Context, igdbID int64) error {
	return s.syncRoot(ctx, igdb.KindPlatform, igdbID)
}

func (s *SyncService) syncRoot(ctx context.Context, kind igdb.Kind, igdbID int64) error {
	query := igdb.BuildQuery(kind, fmt.Sprintf("id = %d", igdbID), 1)
	rows, err := s.api.Request(ctx, kind, query)
	if err != nil {
		return fmt.Errorf("拉取%s/%d失败: %w", kind, igdbID, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s/%d", igdb.ErrNotFound, kind, igdbID)
	}

	if err := s.normalizer.Normalize(ctx, kind, rows[0]); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"kind": kind, "id": igdbID}).Info("同步完成")
	return nil
}

// SearchGames 目录搜索透传（给前端选择器用，结果未入库，加入收藏时才归一化）
func (s *SyncService) SearchGames(ctx context.Context, term string) ([]json.RawMessage, error) {
	if term == "" {
		return nil, fmt.Errorf("搜索词不能为空")
	}
	query := igdb.BuildSearch(igdb.KindGame, term, s.cfg.Sync.SearchLimit)
	rows, err := s.api.Request(ctx, igdb.KindGame, query)
	if err != nil {
		return nil, fmt.Errorf("搜索失败: %w", err)
	}
	return rows, nil
}
