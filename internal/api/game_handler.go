package api

import (
	"net/http"
	"strconv"

	"GameShelfSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameHandler 提供给前端的游戏目录查询接口
type GameHandler struct {
	games   repository.GameRepository
	catalog repository.CatalogRepository
	logger  *logrus.Logger
}

// NewGameHandler 创建 GameHandler
func NewGameHandler(db *gorm.DB, logger *logrus.Logger) *GameHandler {
	return &GameHandler{
		games:   repository.NewGameRepository(db),
		catalog: repository.NewCatalogRepository(db),
		logger:  logger,
	}
}

// ListGames 游戏列表接口
// GET /api/games?slug=&name=&platform_id=&page=1&page_size=20
func (h *GameHandler) ListGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	platformID, _ := strconv.ParseInt(c.Query("platform_id"), 10, 64)

	filter := repository.GameFilter{
		Slug:       c.Query("slug"),
		NameLike:   c.Query("name"),
		PlatformID: platformID,
	}

	games, total, err := h.games.ListGames(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListGames failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games":     games,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetGameDetail 游戏详情（附分类列表）
// GET /api/games/:igdb_id
func (h *GameHandler) GetGameDetail(c *gin.Context) {
	igdbID, ok := parseIGDBID(c)
	if !ok {
		return
	}

	game, err := h.games.GetGameByID(c.Request.Context(), igdbID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "游戏未入库"})
			return
		}
		h.logger.WithError(err).Error("GetGameDetail failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	genres, err := h.games.GetGameGenres(c.Request.Context(), igdbID)
	if err != nil {
		h.logger.WithError(err).Warn("查询分类失败")
	}

	c.JSON(http.StatusOK, gin.H{
		"game":   game,
		"genres": genres,
	})
}

// DeleteGame 删除游戏：清掉根行与全部关系行，共享子实体保留
// DELETE /api/games/:igdb_id
func (h *GameHandler) DeleteGame(c *gin.Context) {
	igdbID, ok := parseIGDBID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteGame(c.Request.Context(), igdbID); err != nil {
		h.logger.Errorf("删除游戏%d失败: %v", igdbID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "游戏已删除"})
}
