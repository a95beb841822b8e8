package history

// Stack is an ordered snapshot sequence, oldest first; the last
// element is the top. Bounded pushes evict the oldest entry, so the
// stack always favors retaining the most recent states.
// Stack 是按时间先后排列的快照序列，末尾为栈顶。
// 有界 push 会淘汰最旧的条目，始终保留最近的状态
type Stack []Snapshot

// Push appends s as the new top. When the resulting length exceeds
// max, the front (oldest) entries are dropped, FIFO.
// Push 将 s 压为新栈顶，长度超过 max 时按 FIFO 淘汰最旧条目
func (st *Stack) Push(s Snapshot, max int) {
	*st = append(*st, s)
	if max > 0 && len(*st) > max {
		excess := len(*st) - max
		*st = (*st)[excess:]
	}
}

// Pop removes and returns the top snapshot; ok is false on an empty stack
// Pop 移除并返回栈顶快照，空栈时 ok 为 false
func (st *Stack) Pop() (Snapshot, bool) {
	if len(*st) == 0 {
		return Snapshot{}, false
	}
	top := (*st)[len(*st)-1]
	*st = (*st)[:len(*st)-1]
	return top, true
}

// Clear empties the stack
// Clear 清空栈
func (st *Stack) Clear() {
	*st = nil
}

func (st Stack) Len() int {
	return len(st)
}

// Top returns the most recent snapshot without removing it
// Top 返回栈顶快照但不移除
func (st Stack) Top() (Snapshot, bool) {
	if len(st) == 0 {
		return Snapshot{}, false
	}
	return st[len(st)-1], true
}
