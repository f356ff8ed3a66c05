package igdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 展开字段必须与子实体自身的完整字段清单（含其引用字段与再展开）逐字一致——
// 同一实体无论作为顶层查询、别的根的展开还是Stub补齐，字段集合相同。
func TestFieldListExpansionConsistency(t *testing.T) {
	for rootKind, exps := range expansions {
		full := FieldList(rootKind)
		for _, e := range exps {
			for _, f := range strings.Split(FieldList(e.kind), ",") {
				assert.Contains(t, full, e.field+"."+f,
					"%s 展开 %s 缺少字段 %s", rootKind, e.field, f)
			}
		}
	}

	// 游戏展开里的平台必须带引用字段与二级展开，与顶层平台查询一致
	gameFields := FieldList(KindGame)
	assert.Contains(t, gameFields, "platforms.platform_family.name")
	assert.Contains(t, gameFields, "platforms.platform_logo.image_id")
	assert.Contains(t, gameFields, "platforms.versions.platform_logo.image_id")
}

func TestFieldListScalarOnly(t *testing.T) {
	// 无展开的实体只返回标量清单
	assert.Equal(t, scalarFields[KindGenre], FieldList(KindGenre))
	// 未登记的类型兜底为*
	assert.Equal(t, "*", FieldList(Kind("unknown_things")))
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(KindGenre, "id = 5", 1)
	assert.Equal(t, "fields id,name,slug,url,checksum; where id = 5; limit 1;", q)

	// 无where子句
	q = BuildQuery(KindGenre, "", 10)
	assert.Equal(t, "fields id,name,slug,url,checksum; limit 10;", q)
}

func TestBuildSearch(t *testing.T) {
	q := BuildSearch(KindGenre, "zelda", 20)
	require.True(t, strings.HasPrefix(q, `search "zelda"; fields `))
	assert.True(t, strings.HasSuffix(q, "limit 20;"))

	// 搜索词中的引号与分号会被剥掉，不会破坏查询语法
	q = BuildSearch(KindGenre, `ze"lda; fields *`, 5)
	assert.True(t, strings.HasPrefix(q, `search "zelda fields *"; `))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t,
		"https://images.igdb.com/igdb/image/upload/t_cover_big/co1wyy.jpg",
		ImageURL("co1wyy"))
	assert.Equal(t, "", ImageURL(""))
}
