package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/model"
	"GameShelfSync/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Cover{}, &model.Screenshot{}, &model.Artwork{},
		&model.CompanyLogo{}, &model.PlatformLogo{},
		&model.Genre{}, &model.Theme{}, &model.Keyword{}, &model.Franchise{},
		&model.GameMode{}, &model.PlayerPerspective{}, &model.Company{},
		&model.PlatformFamily{}, &model.PlatformTypeRef{},
		&model.Language{}, &model.LanguageSupportType{},
		&model.Platform{}, &model.PlatformVersion{}, &model.Game{},
		&model.MultiplayerMode{}, &model.ReleaseDate{}, &model.AgeRating{},
		&model.InvolvedCompany{}, &model.Website{}, &model.ExternalGame{},
		&model.GameVideo{}, &model.LanguageSupport{},
		&model.GameGenre{}, &model.GameTheme{}, &model.GameKeyword{},
		&model.GameFranchise{}, &model.GameGameMode{}, &model.GamePlayerPerspective{},
		&model.GameScreenshot{}, &model.GameArtwork{}, &model.GameVideoLink{},
		&model.GameWebsite{}, &model.GameExternalGame{}, &model.GameReleaseDate{},
		&model.GameAgeRating{}, &model.GameInvolvedCompany{}, &model.GameMultiplayerMode{},
		&model.GameLanguageSupport{}, &model.GamePlatform{}, &model.PlatformVersionLink{},
		&model.User{}, &model.Location{}, &model.CollectionEntry{},
	))
	return db
}

var whereIDRe = regexp.MustCompile(`where id = (\d+)`)

// fakeCatalogClient 内存目录：按(kind,id)存完整对象体，供Stub Resolver取数
type fakeCatalogClient struct {
	docs  map[igdb.Kind]map[int64]json.RawMessage
	calls int
}

func newFakeCatalog() *fakeCatalogClient {
	return &fakeCatalogClient{docs: make(map[igdb.Kind]map[int64]json.RawMessage)}
}

func (f *fakeCatalogClient) put(kind igdb.Kind, id int64, doc string) {
	if f.docs[kind] == nil {
		f.docs[kind] = make(map[int64]json.RawMessage)
	}
	f.docs[kind][id] = json.RawMessage(doc)
}

func (f *fakeCatalogClient) Request(ctx context.Context, kind igdb.Kind, query string) ([]json.RawMessage, error) {
	f.calls++
	m := whereIDRe.FindStringSubmatch(query)
	if m == nil {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	id, _ := strconv.ParseInt(m[1], 10, 64)
	doc, ok := f.docs[kind][id]
	if !ok {
		return []json.RawMessage{}, nil // 空数组，不是错误
	}
	return []json.RawMessage{doc}, nil
}

func newTestNormalizer(db *gorm.DB, api *fakeCatalogClient) *Normalizer {
	repo := repository.NewCatalogRepository(db)
	return NewNormalizer(repo, NewStubResolver(api, testLogger()), testLogger())
}

const gameDoc42 = `{
	"id": 42,
	"name": "Half-Life 2",
	"slug": "half-life-2",
	"rating": 91.5,
	"cover": {"id": 77, "image_id": "co1wyy", "width": 264, "height": 352},
	"genres": [{"id": 5, "name": "Shooter", "slug": "shooter"}],
	"involved_companies": [{"id": 9, "company": 3, "developer": true}]
}`

// 完整归一化链路：嵌套对象直接落库，裸引用经补齐后落库，关系行齐全
func TestNormalizeGameGraph(t *testing.T) {
	db := testDB(t)
	api := newFakeCatalog()
	api.put(igdb.KindCompany, 3, `{"id": 3, "name": "Valve", "slug": "valve"}`)

	n := newTestNormalizer(db, api)
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(gameDoc42)))

	// 根行
	var game model.Game
	require.NoError(t, db.First(&game, "id = ?", 42).Error)
	assert.Equal(t, "Half-Life 2", game.Name)
	assert.Equal(t, model.RefID(77), game.CoverID)
	assert.JSONEq(t, gameDoc42, string(game.RawDocument))

	// 嵌套对象直接落库
	var genre model.Genre
	require.NoError(t, db.First(&genre, "id = ?", 5).Error)
	assert.Equal(t, "Shooter", genre.Name)

	var cover model.Cover
	require.NoError(t, db.First(&cover, "id = ?", 77).Error)
	assert.Equal(t, "co1wyy", cover.ImageID)

	// 裸引用company=3经补齐落库（name必填得到满足）
	var company model.Company
	require.NoError(t, db.First(&company, "id = ?", 3).Error)
	assert.Equal(t, "Valve", company.Name)

	var ic model.InvolvedCompany
	require.NoError(t, db.First(&ic, "id = ?", 9).Error)
	assert.Equal(t, model.RefID(3), ic.CompanyID)
	assert.True(t, ic.Developer)

	// 关系行
	var gg model.GameGenre
	require.NoError(t, db.First(&gg, "game_id = ? AND genre_id = ?", 42, 5).Error)
	var gic model.GameInvolvedCompany
	require.NoError(t, db.First(&gic, "game_id = ? AND involved_company_id = ?", 42, 9).Error)
}

// 重复归一化幂等：行数不增长，标量字段被覆盖
func TestNormalizeIdempotent(t *testing.T) {
	db := testDB(t)
	api := newFakeCatalog()
	api.put(igdb.KindCompany, 3, `{"id": 3, "name": "Valve"}`)

	n := newTestNormalizer(db, api)
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(gameDoc42)))

	countRows := func() (games, genres, links int64) {
		db.Model(&model.Game{}).Count(&games)
		db.Model(&model.Genre{}).Count(&genres)
		db.Model(&model.GameGenre{}).Count(&links)
		return
	}
	g1, ge1, l1 := countRows()

	// 第二次同步：name有变化
	updated := `{
		"id": 42,
		"name": "Half-Life 2: Updated",
		"genres": [{"id": 5, "name": "Shooter"}],
		"involved_companies": [{"id": 9, "company": 3, "developer": true}]
	}`
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(updated)))

	g2, ge2, l2 := countRows()
	assert.Equal(t, g1, g2)
	assert.Equal(t, ge1, ge2)
	assert.Equal(t, l1, l2)

	var game model.Game
	require.NoError(t, db.First(&game, "id = ?", 42).Error)
	assert.Equal(t, "Half-Life 2: Updated", game.Name)
	assert.JSONEq(t, updated, string(game.RawDocument), "原始文档副本应整体覆盖")
}

// stub升级：先以裸引用入库的分类（无name约束不存在——分类有约束，
// 此处用截图演示无约束实体的先stub后补全路径）
func TestNormalizeStubUpgrade(t *testing.T) {
	db := testDB(t)
	api := newFakeCatalog()

	n := newTestNormalizer(db, api)

	// 第一次：screenshots是裸ID数组（截图无必填约束，落最小stub）
	doc1 := `{"id": 42, "name": "Half-Life 2", "screenshots": [101]}`
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(doc1)))

	var shot model.Screenshot
	require.NoError(t, db.First(&shot, "id = ?", 101).Error)
	assert.Empty(t, shot.ImageID, "stub行只有ID")

	// 第二次：带完整对象，stub行被覆盖成完整行
	doc2 := `{"id": 42, "name": "Half-Life 2", "screenshots": [{"id": 101, "image_id": "sc9abc", "width": 1920}]}`
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(doc2)))

	require.NoError(t, db.First(&shot, "id = ?", 101).Error)
	assert.Equal(t, "sc9abc", shot.ImageID)

	var count int64
	db.Model(&model.Screenshot{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// 补齐失败只跳过对应子实体，批次其余部分照常提交
func TestNormalizeSkipOnResolutionFailure(t *testing.T) {
	db := testDB(t)
	api := newFakeCatalog() // company 3 不存在，补齐会拿到空结果

	n := newTestNormalizer(db, api)
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(gameDoc42)))

	// 根与分类照常落库
	var game model.Game
	require.NoError(t, db.First(&game, "id = ?", 42).Error)
	var genre model.Genre
	require.NoError(t, db.First(&genre, "id = ?", 5).Error)

	// involved_company及其关系行被整体跳过
	var icCount, linkCount int64
	db.Model(&model.InvolvedCompany{}).Count(&icCount)
	db.Model(&model.GameInvolvedCompany{}).Count(&linkCount)
	assert.Equal(t, int64(0), icCount)
	assert.Equal(t, int64(0), linkCount, "跳过的子实体不能留下悬空关系行")
}

// 平台根：单值引用走FK列，versions走关系表
func TestNormalizePlatform(t *testing.T) {
	db := testDB(t)
	api := newFakeCatalog()

	doc := `{
		"id": 6,
		"name": "PC (Microsoft Windows)",
		"platform_logo": {"id": 203, "image_id": "pl_win"},
		"platform_family": {"id": 4, "name": "Windows"},
		"versions": [{"id": 13, "name": "Windows 11", "platform_logo": 203}]
	}`
	n := newTestNormalizer(db, api)
	require.NoError(t, n.Normalize(context.Background(), igdb.KindPlatform, json.RawMessage(doc)))

	var platform model.Platform
	require.NoError(t, db.First(&platform, "id = ?", 6).Error)
	assert.Equal(t, model.RefID(203), platform.PlatformLogoID)
	assert.Equal(t, model.RefID(4), platform.PlatformFamilyID)

	var version model.PlatformVersion
	require.NoError(t, db.First(&version, "id = ?", 13).Error)
	assert.Equal(t, "Windows 11", version.Name)

	var link model.PlatformVersionLink
	require.NoError(t, db.First(&link, "platform_id = ? AND version_id = ?", 6, 13).Error)

	// 版本里对同一logo的裸引用排在完整对象之后，不得把完整行回退成stub
	var logo model.PlatformLogo
	require.NoError(t, db.First(&logo, "id = ?", 203).Error)
	assert.Equal(t, "pl_win", logo.ImageID)
}

// 跨文档：实体已有完整行后，后续文档里以裸引用出现不得清掉已有字段
func TestNormalizeBareRefKeepsFullRow(t *testing.T) {
	db := testDB(t)
	n := newTestNormalizer(db, newFakeCatalog())

	full := `{"id": 42, "name": "Half-Life 2", "screenshots": [{"id": 101, "image_id": "sc9abc", "width": 1920}]}`
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(full)))

	bare := `{"id": 43, "name": "Portal", "screenshots": [101]}`
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(bare)))

	var shot model.Screenshot
	require.NoError(t, db.First(&shot, "id = ?", 101).Error)
	assert.Equal(t, "sc9abc", shot.ImageID)
	assert.Equal(t, 1920, shot.Width)

	// 两个游戏都挂上了同一张截图
	var links int64
	db.Model(&model.GameScreenshot{}).Where("screenshot_id = ?", 101).Count(&links)
	assert.Equal(t, int64(2), links)
}

// 游戏文档携带的平台对象体缺引用字段时，已同步平台的外键列与原始文档不回退；
// 对象体自带的字段照常覆盖
func TestNormalizeNestedPlatformKeepsReferences(t *testing.T) {
	db := testDB(t)
	n := newTestNormalizer(db, newFakeCatalog())

	platformDoc := `{
		"id": 6,
		"name": "PC (Microsoft Windows)",
		"platform_logo": {"id": 203, "image_id": "pl_win"},
		"platform_family": {"id": 4, "name": "Windows"}
	}`
	require.NoError(t, n.Normalize(context.Background(), igdb.KindPlatform, json.RawMessage(platformDoc)))

	gameDoc := `{"id": 42, "name": "Half-Life 2",
		"platforms": [{"id": 6, "name": "PC (Microsoft Windows)", "slug": "win"}]}`
	require.NoError(t, n.Normalize(context.Background(), igdb.KindGame, json.RawMessage(gameDoc)))

	var platform model.Platform
	require.NoError(t, db.First(&platform, "id = ?", 6).Error)
	assert.Equal(t, model.RefID(4), platform.PlatformFamilyID)
	assert.Equal(t, model.RefID(203), platform.PlatformLogoID)
	assert.JSONEq(t, platformDoc, string(platform.RawDocument), "原始文档只随顶层同步整体覆盖")
	assert.Equal(t, "win", platform.Slug, "对象体携带的字段照常覆盖")
}

// 不支持的聚合根类型直接报错
func TestNormalizeUnknownRoot(t *testing.T) {
	n := newTestNormalizer(testDB(t), newFakeCatalog())
	err := n.Normalize(context.Background(), igdb.KindGenre, json.RawMessage(`{"id":1,"name":"x"}`))
	assert.Error(t, err)
}
