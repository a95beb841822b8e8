package dao

import (
	"github.com/haierkeys/note-revision-service/internal/model"
	"github.com/haierkeys/note-revision-service/pkg/app"
	"github.com/haierkeys/note-revision-service/pkg/convert"
	"github.com/haierkeys/note-revision-service/pkg/timex"
)

type Note struct {
	ID               int64              `json:"id" form:"id"`                             // ID
	Title            string             `json:"title" form:"title"`                       // 标题
	Content          string             `json:"content" form:"content"`                   // 内容
	UpdatedTimestamp int64              `json:"updatedTimestamp" form:"updatedTimestamp"` // 冲突令牌
	UndoHistory      model.SnapshotList `json:"-" form:"-"`                               // 撤销栈
	RedoHistory      model.SnapshotList `json:"-" form:"-"`                               // 重做栈
	IsDeleted        int                `json:"isDeleted" form:"isDeleted"`               // 是否已删除
	DeletedAt        timex.Time         `json:"deletedAt" form:"deletedAt"`               // 删除时间
	CreatedAt        timex.Time         `json:"createdAt" form:"createdAt"`               // 创建时间
	UpdatedAt        timex.Time         `json:"updatedAt" form:"updatedAt"`               // 更新时间
}

type NoteSet struct {
	Title            string             `json:"title" form:"title"`                       // 标题
	Content          string             `json:"content" form:"content"`                   // 内容
	UpdatedTimestamp int64              `json:"updatedTimestamp" form:"updatedTimestamp"` // 冲突令牌
	UndoHistory      model.SnapshotList `json:"-" form:"-"`                               // 撤销栈
	RedoHistory      model.SnapshotList `json:"-" form:"-"`                               // 重做栈
}

// NoteCreate 创建笔记记录
// 函数使用说明: 在数据库中创建新的笔记记录,自动设置创建时间和更新时间。
func (d *Dao) NoteCreate(params *NoteSet) (*Note, error) {
	m := convert.StructAssign(params, &model.Note{}).(*model.Note)

	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := d.db.WithContext(d.ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return convert.StructAssign(m, &Note{}).(*Note), nil
}

// NoteGetById 根据ID获取笔记，不包含回收站中的记录
func (d *Dao) NoteGetById(id int64) (*Note, error) {
	var m model.Note
	err := d.db.WithContext(d.ctx).
		Where("id = ? AND is_deleted = ?", id, 0).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return convert.StructAssign(&m, &Note{}).(*Note), nil
}

// NoteGetAnyById 根据ID获取笔记，包含回收站中的记录
func (d *Dao) NoteGetAnyById(id int64) (*Note, error) {
	var m model.Note
	err := d.db.WithContext(d.ctx).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return convert.StructAssign(&m, &Note{}).(*Note), nil
}

// NoteSave persists the full mutable state of a note after an edit,
// undo or redo. The history stacks are written together with the
// content so the row never holds a half-applied operation.
// NoteSave 在编辑、撤销或重做后持久化笔记的全部可变状态，
// 历史栈与内容一并写入，保证行内不会出现半应用的操作。
func (d *Dao) NoteSave(params *NoteSet, id int64) (*Note, error) {
	m := convert.StructAssign(params, &model.Note{}).(*model.Note)
	m.ID = id
	m.UpdatedAt = timex.Now()

	err := d.db.WithContext(d.ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Select("title", "content", "updated_timestamp", "undo_history", "redo_history", "updated_at").
		Updates(m).Error
	if err != nil {
		return nil, err
	}
	return d.NoteGetAnyById(id)
}

// NoteUpdateDelete 将笔记移入回收站，历史栈保持不变
func (d *Dao) NoteUpdateDelete(id int64) error {
	return d.db.WithContext(d.ctx).
		Model(&model.Note{}).
		Where("id = ? AND is_deleted = ?", id, 0).
		Updates(map[string]any{
			"is_deleted": 1,
			"deleted_at": timex.Now(),
			"updated_at": timex.Now(),
		}).Error
}

// NoteUpdateRestore 将笔记从回收站恢复
func (d *Dao) NoteUpdateRestore(id int64) error {
	return d.db.WithContext(d.ctx).
		Model(&model.Note{}).
		Where("id = ? AND is_deleted = ?", id, 1).
		Updates(map[string]any{
			"is_deleted": 0,
			"deleted_at": timex.Time{},
			"updated_at": timex.Now(),
		}).Error
}

// NoteDelete 永久删除笔记记录
func (d *Dao) NoteDelete(id int64) error {
	return d.db.WithContext(d.ctx).
		Where("id = ?", id).
		Delete(&model.Note{}).Error
}

// NoteList 获取笔记列表，支持关键字过滤
func (d *Dao) NoteList(keyword string, page int, pageSize int) ([]*Note, error) {
	var ms []*model.Note
	q := d.db.WithContext(d.ctx).
		Where("is_deleted = ?", 0)
	if keyword != "" {
		q = q.Where("title LIKE ?", "%"+keyword+"%")
	}
	err := q.Order("updated_timestamp DESC").
		Offset(app.GetPageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*Note, 0, len(ms))
	for _, m := range ms {
		list = append(list, convert.StructAssign(m, &Note{}).(*Note))
	}
	return list, nil
}

// NoteListCount 获取笔记总数
func (d *Dao) NoteListCount(keyword string) (int64, error) {
	var count int64
	q := d.db.WithContext(d.ctx).
		Model(&model.Note{}).
		Where("is_deleted = ?", 0)
	if keyword != "" {
		q = q.Where("title LIKE ?", "%"+keyword+"%")
	}
	err := q.Count(&count).Error
	return count, err
}

// NoteTrashList 获取回收站笔记列表
func (d *Dao) NoteTrashList(page int, pageSize int) ([]*Note, error) {
	var ms []*model.Note
	err := d.db.WithContext(d.ctx).
		Where("is_deleted = ?", 1).
		Order("deleted_at DESC").
		Offset(app.GetPageOffset(page, pageSize)).
		Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*Note, 0, len(ms))
	for _, m := range ms {
		list = append(list, convert.StructAssign(m, &Note{}).(*Note))
	}
	return list, nil
}

// NoteTrashListCount 获取回收站笔记总数
func (d *Dao) NoteTrashListCount() (int64, error) {
	var count int64
	err := d.db.WithContext(d.ctx).
		Model(&model.Note{}).
		Where("is_deleted = ?", 1).
		Count(&count).Error
	return count, err
}

// NoteDeleteExpired removes trashed notes whose deletion time is
// older than the given cutoff, returning the number of rows removed.
// NoteDeleteExpired 永久删除删除时间早于给定时间的回收站笔记，返回删除行数
func (d *Dao) NoteDeleteExpired(before timex.Time) (int64, error) {
	result := d.db.WithContext(d.ctx).
		Where("is_deleted = ? AND deleted_at < ?", 1, before).
		Delete(&model.Note{})
	return result.RowsAffected, result.Error
}
