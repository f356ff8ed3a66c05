package api

import (
	"net/http"
	"strconv"
	"strings"

	"GameShelfSync/internal/interfaces"
	"GameShelfSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CollectionHandler 用户收藏接口（全部经 ActorMiddleware 取身份）
type CollectionHandler struct {
	collectionService *service.CollectionService
	logger            *logrus.Logger
}

func NewCollectionHandler(db *gorm.DB, images interfaces.ImageStore, logger *logrus.Logger) *CollectionHandler {
	return &CollectionHandler{
		collectionService: service.NewCollectionService(db, images, logger),
		logger:            logger,
	}
}

// createEntryRequest 加入收藏的请求体。照片走base64（[]byte的JSON编码即base64）
type createEntryRequest struct {
	GameID int64 `json:"game_id" binding:"required"`
	service.EntryInput
}

// CreateEntry 把已入库的游戏加入当前用户收藏（快照在此刻生成）
// POST /api/collection
func (h *CollectionHandler) CreateEntry(c *gin.Context) {
	userID := actorUserID(c)

	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体非法: " + err.Error()})
		return
	}

	entry, err := h.collectionService.Materialize(c.Request.Context(), userID, req.GameID, &req.EntryInput)
	if err != nil {
		h.logger.Errorf("用户%d收藏游戏%d失败: %v", userID, req.GameID, err)
		if strings.Contains(err.Error(), "未入库") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListEntries 当前用户收藏列表
// GET /api/collection?page=1&page_size=20
func (h *CollectionHandler) ListEntries(c *gin.Context) {
	userID := actorUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	entries, total, err := h.collectionService.ListEntries(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListEntries failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":   entries,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetEntryDetail 按UUID取收藏条目（仅限本人）
// GET /api/collection/:entry_uuid
func (h *CollectionHandler) GetEntryDetail(c *gin.Context) {
	userID := actorUserID(c)
	entryUUID := c.Param("entry_uuid")
	if entryUUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry_uuid is required"})
		return
	}

	entry, err := h.collectionService.GetEntry(c.Request.Context(), userID, entryUUID)
	if err != nil {
		if strings.Contains(err.Error(), "不存在") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}
