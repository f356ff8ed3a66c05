package service

import (
	"context"
	"encoding/json"
	"fmt"

	"GameShelfSync/internal/igdb"
	"GameShelfSync/internal/model"
	"GameShelfSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Normalizer 实体图归一化器：把一份嵌套的原始目录文档拆成本地的
// 归一化行。两阶段执行——
//
// 阶段一（计划，只读）：遍历根的关系清单，解码嵌套引用、经Stub Resolver
// 补齐裸引用，排出依赖有序的写入计划。网络取数全部发生在这里，事务外。
// 补齐/解码失败只跳过对应子实体并记警告，批次继续。
//
// 阶段二（写入，单事务）：按计划顺序upsert子实体→upsert根→写关系行。
// 任何写入失败回滚整个事务——根级别不存在可观察的部分写入。
//
// 子实体冲突更新按列收窄：只覆盖对象体实际携带的字段，纯stub（仅ID）
// 不动已有行——先入库的完整行绝不被后到的更瘦文档回退。
type Normalizer struct {
	repo     repository.CatalogRepository
	resolver *StubResolver
	logger   *logrus.Logger
}

func NewNormalizer(repo repository.CatalogRepository, resolver *StubResolver, logger *logrus.Logger) *Normalizer {
	return &Normalizer{repo: repo, resolver: resolver, logger: logger}
}

// plannedEntity 一个待upsert的子实体及冲突时允许覆盖的列
type plannedEntity struct {
	entity  interface{}
	columns []string
}

// writePlan 依赖有序的写入计划：entities顺序即upsert顺序
type writePlan struct {
	entities []plannedEntity
	links    []interface{}
	root     interface{}
	rootID   int64
}

// Normalize 归一化一份聚合根文档（Game/Platform/PlatformVersion）
func (n *Normalizer) Normalize(ctx context.Context, kind igdb.Kind, doc json.RawMessage) error {
	spec, ok := rootRegistry[kind]
	if !ok {
		return fmt.Errorf("不支持的聚合根类型: %s", kind)
	}

	plan, err := n.buildPlan(ctx, kind, spec, doc)
	if err != nil {
		return err
	}

	if err := n.repo.WithTx(ctx, func(tx *gorm.DB) error {
		// 1. 依赖顺序upsert全部子实体（只覆盖对象体携带的列）
		for _, e := range plan.entities {
			if err := n.repo.UpsertEntityColumns(ctx, tx, e.entity, e.columns); err != nil {
				return fmt.Errorf("upsert子实体失败: %w", err)
			}
		}
		// 2. upsert聚合根（含整份原始文档副本）
		if err := n.repo.UpsertEntity(ctx, tx, plan.root); err != nil {
			return fmt.Errorf("upsert聚合根失败: %w", err)
		}
		// 3. 写关系行（子实体已全部就位，外键必然可满足）
		for _, l := range plan.links {
			if err := n.repo.LinkRelation(ctx, tx, l); err != nil {
				return fmt.Errorf("写关系行失败: %w", err)
			}
		}
		return nil
	}); err != nil {
		return &NormalizationError{Kind: kind, RootID: plan.rootID, Err: err}
	}

	n.logger.WithFields(logrus.Fields{
		"kind":     kind,
		"root_id":  plan.rootID,
		"entities": len(plan.entities),
		"links":    len(plan.links),
	}).Info("归一化完成")
	return nil
}

// buildPlan 阶段一：解码+补齐，排出写入计划
func (n *Normalizer) buildPlan(ctx context.Context, kind igdb.Kind, spec rootSpec, doc json.RawMessage) (*writePlan, error) {
	rootID, err := extractID(doc)
	if err != nil {
		return nil, fmt.Errorf("聚合根文档非法: %w", err)
	}

	root, err := spec.decode(doc)
	if err != nil {
		return nil, fmt.Errorf("解码聚合根失败: %w", err)
	}

	fields, err := model.SplitDocument(doc)
	if err != nil {
		return nil, err
	}

	plan := &writePlan{root: root, rootID: rootID}
	for _, rel := range spec.relations {
		raw, ok := fields[rel.field]
		if !ok {
			continue
		}
		refs, err := decodeRefs(raw, rel.single)
		if err != nil {
			n.logger.WithFields(logrus.Fields{"field": rel.field, "root_id": rootID}).
				Warnf("关系字段解析失败，跳过: %v", err)
			continue
		}
		for _, ref := range refs {
			n.planRef(ctx, plan, rel, rootID, ref)
		}
	}
	return plan, nil
}

// planRef 把一个嵌套引用排进计划；失败时跳过该引用（及其关系行）
func (n *Normalizer) planRef(ctx context.Context, plan *writePlan, rel relationSpec, rootID int64, ref model.RawRef) {
	if ref.ID == 0 {
		return
	}

	body, err := n.completeBody(ctx, rel.kind, ref)
	if err != nil {
		n.warnSkip(rel.kind, ref.ID, err)
		return
	}

	// 复合实体的二级引用先排进计划；必填引用补不齐则整个复合实体跳过
	for _, ns := range rel.nested {
		if err := n.planNested(ctx, plan, body, ns); err != nil {
			n.warnSkip(rel.kind, ref.ID, err)
			return
		}
	}

	ent, err := kindRegistry[rel.kind].decode(body)
	if err != nil {
		n.warnSkip(rel.kind, ref.ID, err)
		return
	}
	cols, err := model.UpdatableColumns(ent, body)
	if err != nil {
		n.warnSkip(rel.kind, ref.ID, err)
		return
	}
	plan.entities = append(plan.entities, plannedEntity{entity: ent, columns: cols})
	if rel.link != nil {
		plan.links = append(plan.links, rel.link(rootID, ref.ID))
	}
}

// planNested 处理复合实体内部的二级引用（经FK列关联，不写关系行）
func (n *Normalizer) planNested(ctx context.Context, plan *writePlan, compositeBody json.RawMessage, ns nestedRef) error {
	fields, err := model.SplitDocument(compositeBody)
	if err != nil {
		return err
	}
	raw, ok := fields[ns.field]
	if !ok {
		// 内部引用缺失：必填类型无法落库，可选类型直接放过
		if kindRegistry[ns.kind].requiresName {
			return fmt.Errorf("复合实体缺少必填引用字段%s", ns.field)
		}
		return nil
	}

	var ref model.RawRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return fmt.Errorf("解析内部引用%s失败: %w", ns.field, err)
	}
	if ref.ID == 0 {
		if kindRegistry[ns.kind].requiresName {
			return fmt.Errorf("复合实体的必填引用%s为空", ns.field)
		}
		return nil
	}

	body, err := n.completeBody(ctx, ns.kind, ref)
	if err != nil {
		return err
	}
	ent, err := kindRegistry[ns.kind].decode(body)
	if err != nil {
		return err
	}
	cols, err := model.UpdatableColumns(ent, body)
	if err != nil {
		return err
	}
	plan.entities = append(plan.entities, plannedEntity{entity: ent, columns: cols})
	return nil
}

// completeBody 把引用补齐成可落库的对象体：
//   - 对象体已带必填字段 → 原样使用
//   - 裸ID且无必填约束 → 最小stub（仅ID）
//   - 裸ID或缺name且有必填约束 → Stub Resolver同步拉取完整对象
func (n *Normalizer) completeBody(ctx context.Context, kind igdb.Kind, ref model.RawRef) (json.RawMessage, error) {
	ks, ok := kindRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("未登记的实体类型: %s", kind)
	}

	if ref.Body != nil && (!ks.requiresName || hasName(ref.Body)) {
		return ref.Body, nil
	}
	if !ks.requiresName {
		return stubBody(ref.ID), nil
	}

	resolved, err := n.resolver.Resolve(ctx, kind, ref.ID)
	if err != nil {
		return nil, &StubResolutionError{Kind: kind, ID: ref.ID, Err: err}
	}
	if !hasName(resolved) {
		return nil, &StubResolutionError{Kind: kind, ID: ref.ID,
			Err: fmt.Errorf("补齐后的对象仍缺少name")}
	}
	return resolved, nil
}

func (n *Normalizer) warnSkip(kind igdb.Kind, id int64, err error) {
	n.logger.WithFields(logrus.Fields{"kind": kind, "id": id}).
		Warnf("子实体跳过（关系行一并跳过）: %v", err)
}

// decodeRefs 统一单值/多值引用为引用切片
func decodeRefs(raw json.RawMessage, single bool) ([]model.RawRef, error) {
	if single {
		var ref model.RawRef
		if err := json.Unmarshal(raw, &ref); err != nil {
			return nil, err
		}
		return []model.RawRef{ref}, nil
	}
	var refs []model.RawRef
	if err := json.Unmarshal(raw, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}
