package typesense

import (
	"sync"
	"time"
)

type nodeHealth struct {
	healthy    bool
	lastAccess time.Time
}

// nodePool owns node selection for the request executor. It keeps a private
// copy of the configured nodes together with per-node health state, and is
// safe for concurrent use by calls issued through one client instance.
type nodePool struct {
	mu                  sync.Mutex
	nodes               []Node
	nearest             *Node
	health              map[string]*nodeHealth
	index               int
	healthcheckInterval time.Duration
	obs                 Observer

	now func() time.Time
}

func newNodePool(cfg Config, obs Observer) *nodePool {
	p := &nodePool{
		nodes:               append([]Node(nil), cfg.Nodes...),
		nearest:             cfg.NearestNode,
		health:              make(map[string]*nodeHealth, len(cfg.Nodes)+1),
		healthcheckInterval: cfg.HealthcheckInterval,
		obs:                 obs,
		now:                 time.Now,
	}
	start := p.now()
	for _, node := range p.nodes {
		p.health[node.URL()] = &nodeHealth{healthy: true, lastAccess: start}
	}
	if p.nearest != nil {
		p.health[p.nearest.URL()] = &nodeHealth{healthy: true, lastAccess: start}
	}
	return p
}

// pick returns the node to use for the next attempt. The nearest node wins
// whenever it is eligible. Otherwise a circular index advances over the node
// list skipping ineligible nodes, wrapping at most once; after a full wrap
// the next node in rotation is returned regardless of health, so a request
// always has somewhere to go.
func (p *nodePool) pick() Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.nearest != nil && p.eligible(*p.nearest, now) {
		return *p.nearest
	}
	for range p.nodes {
		node := p.nodes[p.index]
		p.index = (p.index + 1) % len(p.nodes)
		if p.eligible(node, now) {
			return node
		}
	}
	return p.nodes[p.index]
}

// eligible reports whether a node may be selected: it is either marked
// healthy or its healthcheck cooldown has elapsed, which lets a failed node
// be probed again for recovery.
func (p *nodePool) eligible(node Node, now time.Time) bool {
	h := p.health[node.URL()]
	return h.healthy || now.Sub(h.lastAccess) >= p.healthcheckInterval
}

// setHealth records the outcome of an attempt against node and stamps its
// last access time, which starts the recovery window on failure.
func (p *nodePool) setHealth(node Node, healthy bool) {
	p.mu.Lock()
	h := p.health[node.URL()]
	changed := h.healthy != healthy
	h.healthy = healthy
	h.lastAccess = p.now()
	p.mu.Unlock()

	if changed {
		p.obs.OnNodeHealthChange(node, healthy)
	}
}
