package workspace

import (
	"sort"
	"sync"

	"writemaster-api/internal/workflow/catalog"
)

// partition 单个格式的条目列表。dead 表示分区已从 store 中摘除，持有旧指针的写者需要重新获取。
type partition struct {
	mu    sync.Mutex
	items []Item
	dead  bool
}

// outputStore 按格式分区的输出集合。
// 不同格式的写入互不阻塞；同一分区内的每次修改都整体替换列表。
type outputStore struct {
	parts sync.Map // formatID -> *partition
}

// update 在分区锁内用 fn 计算新列表。fn 返回空列表时分区被移除。
// create 为 false 且分区不存在时返回 false。
func (s *outputStore) update(formatID string, create bool, fn func([]Item) []Item) bool {
	for {
		var p *partition
		if create {
			v, _ := s.parts.LoadOrStore(formatID, &partition{})
			p = v.(*partition)
		} else {
			v, ok := s.parts.Load(formatID)
			if !ok {
				return false
			}
			p = v.(*partition)
		}

		p.mu.Lock()
		if p.dead {
			p.mu.Unlock()
			continue
		}
		next := fn(p.items)
		if len(next) == 0 {
			p.dead = true
			s.parts.CompareAndDelete(formatID, p)
			next = nil
		}
		p.items = next
		p.mu.Unlock()
		return true
	}
}

func (s *outputStore) formats() []string {
	var ids []string
	s.parts.Range(func(k, _ any) bool {
		ids = append(ids, k.(string))
		return true
	})
	sortFormats(ids)
	return ids
}

// list 返回分区的副本
func (s *outputStore) list(formatID string) []Item {
	v, ok := s.parts.Load(formatID)
	if !ok {
		return nil
	}
	p := v.(*partition)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dead {
		return nil
	}
	return append([]Item(nil), p.items...)
}

func (s *outputStore) find(itemID string) (Item, bool) {
	for _, f := range s.formats() {
		for _, it := range s.list(f) {
			if it.ID == itemID {
				return it, true
			}
		}
	}
	return Item{}, false
}

func (s *outputStore) empty() bool {
	empty := true
	s.parts.Range(func(_, _ any) bool {
		empty = false
		return false
	})
	return empty
}

func appendItem(item Item) func([]Item) []Item {
	return func(items []Item) []Item {
		next := make([]Item, 0, len(items)+1)
		next = append(next, items...)
		return append(next, item)
	}
}

func keepPinned(items []Item) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Pinned {
			next = append(next, it)
		}
	}
	return next
}

func mapItem(itemID string, fn func(Item) Item) func([]Item) []Item {
	return func(items []Item) []Item {
		next := make([]Item, len(items))
		for i, it := range items {
			if it.ID == itemID {
				it = fn(it)
			}
			next[i] = it
		}
		return next
	}
}

func removeItem(itemID string) func([]Item) []Item {
	return func(items []Item) []Item {
		next := make([]Item, 0, len(items))
		for _, it := range items {
			if it.ID != itemID {
				next = append(next, it)
			}
		}
		return next
	}
}

func sortFormats(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		ci, cj := catalog.FormatIndex(ids[i]), catalog.FormatIndex(ids[j])
		if ci != cj {
			return ci < cj
		}
		return ids[i] < ids[j]
	})
}
