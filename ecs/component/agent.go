package component

import "github.com/milk9111/lumaxman/steering"

// Agent is the steering shadow of the render position.
type Agent struct {
	steering.Agent
	// Driven agents are moved by the steering engine; the rest follow their
	// render node and only serve as targets.
	Driven bool
}

var AgentComponent = NewComponent[Agent]()
