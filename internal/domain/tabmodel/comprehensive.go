package tabmodel

import (
	"slices"

	"github.com/bnema/tabstrip/internal/domain/entity"
)

// comprehensiveList is a read view over live and pending tabs, with pending
// tabs at the position they were closed from.
type comprehensiveList struct {
	c *Collection
}

// ComprehensiveModel returns a view containing live and pending tabs.
func (c *Collection) ComprehensiveModel() TabList {
	return comprehensiveList{c: c}
}

func (l comprehensiveList) IsIncognito() bool { return l.c.incognito }

func (l comprehensiveList) Count() int { return len(l.c.rewound) }

func (l comprehensiveList) TabAt(index int) *entity.Tab {
	if index < 0 || index >= len(l.c.rewound) {
		return nil
	}
	return l.c.rewound[index]
}

func (l comprehensiveList) IndexOf(tab *entity.Tab) int {
	if tab == nil {
		return -1
	}
	return slices.IndexFunc(l.c.rewound, func(t *entity.Tab) bool { return t.ID == tab.ID })
}

// TabsOf copies every tab of a TabList.
func TabsOf(list TabList) []*entity.Tab {
	out := make([]*entity.Tab, 0, list.Count())
	for i := range list.Count() {
		out = append(out, list.TabAt(i))
	}
	return out
}

// IDsOf returns the ids of a TabList in order.
func IDsOf(list TabList) []entity.TabID {
	out := make([]entity.TabID, 0, list.Count())
	for i := range list.Count() {
		out = append(out, list.TabAt(i).ID)
	}
	return out
}
