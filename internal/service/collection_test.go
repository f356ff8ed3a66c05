package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"GameShelfSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeImageStore 记录收到的图片并返回可预测的URL
type fakeImageStore struct {
	stored []string
	fail   bool
}

func (f *fakeImageStore) Store(ctx context.Context, blob []byte, ownerKey string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("storage unavailable")
	}
	f.stored = append(f.stored, ownerKey)
	return "https://img.local/" + ownerKey, nil
}

// seedGame 预置一个归一化完成的游戏（封面+两个分类+关系行）
func seedGame(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&model.Cover{ID: 77, ImageID: "co1wyy"}).Error)
	require.NoError(t, db.Create(&model.Genre{ID: 5, Name: "Shooter"}).Error)
	require.NoError(t, db.Create(&model.Genre{ID: 8, Name: "Adventure"}).Error)
	require.NoError(t, db.Create(&model.Game{
		ID:               42,
		Name:             "Half-Life 2",
		Rating:           89.0,
		AggregatedRating: 95.0,
		TotalRating:      91.5,
		CoverID:          77,
	}).Error)
	require.NoError(t, db.Create(&model.GameGenre{GameID: 42, GenreID: 5}).Error)
	require.NoError(t, db.Create(&model.GameGenre{GameID: 42, GenreID: 8}).Error)
}

func TestMaterializeSnapshot(t *testing.T) {
	db := testDB(t)
	seedGame(t, db)
	images := &fakeImageStore{}
	svc := NewCollectionService(db, images, testLogger())

	entry, err := svc.Materialize(context.Background(), 1, 42, &EntryInput{
		PlatformID: 6,
		Condition:  "mint",
		Price:      59.99,
		IsPhysical: true,
		HasBox:     true,
		Photos:     [][]byte{[]byte("jpegbytes")},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.EntryUUID)
	assert.Equal(t, "Half-Life 2", entry.Title)
	assert.Equal(t, "https://images.igdb.com/igdb/image/upload/t_cover_big/co1wyy.jpg", entry.CoverURL)
	assert.Equal(t, 91.5, entry.Rating, "有total_rating时优先total")

	var genres []string
	require.NoError(t, json.Unmarshal(entry.GenreNames, &genres))
	assert.ElementsMatch(t, []string{"Shooter", "Adventure"}, genres)

	var photos []string
	require.NoError(t, json.Unmarshal(entry.Photos, &photos))
	require.Len(t, photos, 1)
	assert.Contains(t, photos[0], "https://img.local/")
	assert.Len(t, images.stored, 1)
}

func TestMaterializeRatingPreference(t *testing.T) {
	assert.Equal(t, 91.5, pickRating(&model.Game{TotalRating: 91.5, AggregatedRating: 95, Rating: 89}))
	assert.Equal(t, 95.0, pickRating(&model.Game{AggregatedRating: 95, Rating: 89}))
	assert.Equal(t, 89.0, pickRating(&model.Game{Rating: 89}))
	assert.Equal(t, 0.0, pickRating(&model.Game{}))
}

// 同一（用户，游戏）重复加入产生两条独立条目（去重是前端/调用方的事）
func TestMaterializeDuplicateEntries(t *testing.T) {
	db := testDB(t)
	seedGame(t, db)
	svc := NewCollectionService(db, &fakeImageStore{}, testLogger())

	e1, err := svc.Materialize(context.Background(), 1, 42, &EntryInput{Condition: "mint"})
	require.NoError(t, err)
	e2, err := svc.Materialize(context.Background(), 1, 42, &EntryInput{Condition: "loose"})
	require.NoError(t, err)

	assert.NotEqual(t, e1.EntryUUID, e2.EntryUUID)

	var count int64
	db.Model(&model.CollectionEntry{}).Where("user_id = ? AND game_id = ?", 1, 42).Count(&count)
	assert.Equal(t, int64(2), count)
}

// 快照不随目录更新重刷
func TestMaterializeSnapshotFrozen(t *testing.T) {
	db := testDB(t)
	seedGame(t, db)
	svc := NewCollectionService(db, &fakeImageStore{}, testLogger())

	entry, err := svc.Materialize(context.Background(), 1, 42, &EntryInput{})
	require.NoError(t, err)

	// 目录侧游戏改名后，已有快照保持旧标题
	require.NoError(t, db.Model(&model.Game{}).Where("id = ?", 42).
		Update("name", "Half-Life 2: Episode Three").Error)

	got, err := svc.GetEntry(context.Background(), 1, entry.EntryUUID)
	require.NoError(t, err)
	assert.Equal(t, "Half-Life 2", got.Title)
}

func TestMaterializeGameNotSynced(t *testing.T) {
	db := testDB(t)
	svc := NewCollectionService(db, &fakeImageStore{}, testLogger())

	_, err := svc.Materialize(context.Background(), 1, 999, &EntryInput{})
	assert.Error(t, err)
}

// 存放位置必须属于当前用户
func TestMaterializeLocationOwnership(t *testing.T) {
	db := testDB(t)
	seedGame(t, db)
	require.NoError(t, db.Create(&model.Location{ID: 10, UserID: 2, Name: "别人的书架"}).Error)
	svc := NewCollectionService(db, &fakeImageStore{}, testLogger())

	locID := uint64(10)
	_, err := svc.Materialize(context.Background(), 1, 42, &EntryInput{LocationID: &locID})
	assert.Error(t, err)
}

// 照片存储故障只丢照片，条目照常创建
func TestMaterializePhotoFailureSkipped(t *testing.T) {
	db := testDB(t)
	seedGame(t, db)
	svc := NewCollectionService(db, &fakeImageStore{fail: true}, testLogger())

	entry, err := svc.Materialize(context.Background(), 1, 42, &EntryInput{
		Photos: [][]byte{[]byte("jpegbytes")},
	})
	require.NoError(t, err)

	var photos []string
	require.NoError(t, json.Unmarshal(entry.Photos, &photos))
	assert.Empty(t, photos)
}

// 条目归属校验
func TestGetEntryOwnership(t *testing.T) {
	db := testDB(t)
	seedGame(t, db)
	svc := NewCollectionService(db, &fakeImageStore{}, testLogger())

	entry, err := svc.Materialize(context.Background(), 1, 42, &EntryInput{})
	require.NoError(t, err)

	_, err = svc.GetEntry(context.Background(), 2, entry.EntryUUID)
	assert.Error(t, err, "其他用户不应取到条目")
}
