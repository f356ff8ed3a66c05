package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"GameShelfSync/internal/config"
	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/interfaces"
	"GameShelfSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SyncHandler struct {
	syncService *service.SyncService
	logger      *logrus.Logger
}

func NewSyncHandler(db *gorm.DB, api interfaces.CatalogClient, cfg *config.Config, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: service.NewSyncService(db, api, cfg, logger),
		logger:      logger,
	}
}

// SyncGameHandler 按目录ID同步游戏及其实体图
// @Summary 同步指定游戏
// @Param igdb_id path int true "目录ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sync/games/{igdb_id} [post]
func (h *SyncHandler) SyncGameHandler(c *gin.Context) {
	igdbID, ok := parseIGDBID(c)
	if !ok {
		return
	}

	if err := h.syncService.SyncGame(c.Request.Context(), igdbID); err != nil {
		h.logger.Errorf("同步游戏%d失败: %v", igdbID, err)
		c.JSON(syncErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("游戏%d同步成功", igdbID),
	})
}

// SyncPlatformHandler 按目录ID同步平台（含版本）
// @Summary 同步指定平台
// @Param igdb_id path int true "目录ID"
// @Success 200 {object} map[string]string
// @Router /sync/platforms/{igdb_id} [post]
func (h *SyncHandler) SyncPlatformHandler(c *gin.Context) {
	igdbID, ok := parseIGDBID(c)
	if !ok {
		return
	}

	if err := h.syncService.SyncPlatform(c.Request.Context(), igdbID); err != nil {
		h.logger.Errorf("同步平台%d失败: %v", igdbID, err)
		c.JSON(syncErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("平台%d同步成功", igdbID),
	})
}

// SearchGamesHandler 目录搜索透传（结果未入库）
// GET /api/games/search?q=zelda
func (h *SyncHandler) SearchGamesHandler(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少搜索词q"})
		return
	}

	rows, err := h.syncService.SearchGames(c.Request.Context(), term)
	if err != nil {
		h.logger.Errorf("搜索'%s'失败: %v", term, err)
		c.JSON(syncErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": rows, "count": len(rows)})
}

func parseIGDBID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("igdb_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "igdb_id必须为正整数"})
		return 0, false
	}
	return id, true
}

// syncErrorStatus 把目录客户端的错误分类映射到HTTP状态码
func syncErrorStatus(err error) int {
	var clientErr *igdb.ClientError
	switch {
	case errors.Is(err, igdb.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &clientErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
