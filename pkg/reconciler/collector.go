package reconciler

import (
	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
)

// observation is the surviving report for one normalized model name.
type observation struct {
	key   string
	quota accounts.ModelQuota
}

// collector deduplicates reported models by normalized name, keeping
// first-seen order.
type collector struct {
	order []observation
	index map[string]int
}

func newCollector() *collector {
	return &collector{index: make(map[string]int)}
}

// add records m. A report with a display name replaces the stored one;
// a report without one never replaces an existing entry.
func (c *collector) add(m accounts.ModelQuota) {
	key := modelkey.Normalize(m.Name)
	i, exists := c.index[key]
	if !exists {
		c.index[key] = len(c.order)
		c.order = append(c.order, observation{key: key, quota: m})
		return
	}
	if m.DisplayName != "" {
		c.order[i].quota = m
	}
}

// collect gathers the models reported by every account.
func collect(list []accounts.Account) []observation {
	c := newCollector()
	for _, a := range list {
		for _, m := range a.QuotaModels() {
			c.add(m)
		}
	}
	return c.order
}
