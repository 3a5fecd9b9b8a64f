package main

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/level"
)

// node is the presentation state of one entity.
type node struct {
	pos       cp.Vector
	rotation  float64
	animation string
	direction common.Direction
	loop      bool
}

// screenPresenter collects what the level publishes each tick and draws
// it. It implements level.Presenter.
type screenPresenter struct {
	nodes    map[ecs.Entity]*node
	timeText string
	counters level.Counters
	overlay  level.MetaState
}

func newScreenPresenter() *screenPresenter {
	return &screenPresenter{nodes: make(map[ecs.Entity]*node)}
}

// reset forgets every node before a new level is built.
func (p *screenPresenter) reset() {
	clear(p.nodes)
	p.timeText = ""
	p.counters = level.Counters{}
	p.overlay = level.MetaActive
}

func (p *screenPresenter) node(e ecs.Entity) *node {
	n, ok := p.nodes[e]
	if !ok {
		n = &node{}
		p.nodes[e] = n
	}
	return n
}

func (p *screenPresenter) SetPosition(e ecs.Entity, pos cp.Vector) {
	p.node(e).pos = pos
}

func (p *screenPresenter) SetRotation(e ecs.Entity, rad float64) {
	p.node(e).rotation = rad
}

func (p *screenPresenter) PlayAnimationCycle(e ecs.Entity, id string, dir common.Direction, loop bool) {
	n := p.node(e)
	n.animation = id
	n.direction = dir
	n.loop = loop
}

func (p *screenPresenter) RemoveFromScene(e ecs.Entity) {
	delete(p.nodes, e)
}

func (p *screenPresenter) ShowRemainingTime(text string) {
	p.timeText = text
}

func (p *screenPresenter) ShowCounters(c level.Counters) {
	p.counters = c
}

func (p *screenPresenter) ShowOverlay(state level.MetaState) {
	p.overlay = state
}

// hudText is the status line drawn at the top of the screen.
func (p *screenPresenter) hudText(number int) string {
	return fmt.Sprintf("Level %d   Time %s   Coins %d   Lives %d   Keys missing %d",
		number, p.timeText, p.counters.Coins, p.counters.Lives, p.counters.MissingKeys)
}

// drawLabels prints the playing animation next to each node, in a stable
// order so labels do not flicker.
func (p *screenPresenter) drawLabels(screen *ebiten.Image, height float64) {
	entities := make([]ecs.Entity, 0, len(p.nodes))
	for e, n := range p.nodes {
		if n.animation != "" {
			entities = append(entities, e)
		}
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })
	for _, e := range entities {
		n := p.nodes[e]
		ebitenutil.DebugPrintAt(screen, n.animation, int(n.pos.X)+12, int(height-n.pos.Y)-24)
	}
}
