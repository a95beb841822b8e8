package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Patch returns the textual patch transforming from into to, used as a
// compact change preview alongside history snapshots.
// Patch 返回将 from 变换为 to 的文本补丁，作为历史快照的变更预览
func Patch(from, to string) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(from, to)
	return dmp.PatchToText(patches)
}

// Changes counts the characters added and removed between two contents
// Changes 统计两个内容之间新增与删除的字符数
func Changes(from, to string) (added int, removed int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			removed += len([]rune(d.Text))
		}
	}
	return added, removed
}
