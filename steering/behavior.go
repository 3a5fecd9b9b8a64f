package steering

import "github.com/jakecoffman/cp"

type weightedGoal struct {
	goal   Goal
	weight float64
}

// Behavior is a weighted set of goals. A nil *Behavior means no behavior
// was assigned; an empty one produces zero force.
type Behavior struct {
	goals []weightedGoal
}

func NewBehavior() *Behavior {
	return &Behavior{}
}

// SetWeight adds g or replaces the weight of a goal with the same name.
func (b *Behavior) SetWeight(weight float64, g Goal) *Behavior {
	for i := range b.goals {
		if b.goals[i].goal.Name() == g.Name() {
			b.goals[i] = weightedGoal{goal: g, weight: weight}
			return b
		}
	}
	b.goals = append(b.goals, weightedGoal{goal: g, weight: weight})
	return b
}

// Weight returns the weight of the goal with the given name.
func (b *Behavior) Weight(name string) (float64, bool) {
	if b == nil {
		return 0, false
	}
	for _, wg := range b.goals {
		if wg.goal.Name() == name {
			return wg.weight, true
		}
	}
	return 0, false
}

func (b *Behavior) Len() int {
	if b == nil {
		return 0
	}
	return len(b.goals)
}

func (b *Behavior) IsEmpty() bool {
	return b.Len() == 0
}

// GoalNames lists goals in insertion order.
func (b *Behavior) GoalNames() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.goals))
	for _, wg := range b.goals {
		names = append(names, wg.goal.Name())
	}
	return names
}

// Force sums the weighted goal forces and clamps the result to the
// agent's maximum acceleration.
func (b *Behavior) Force(a *Agent, dt float64) cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	var total cp.Vector
	for _, wg := range b.goals {
		if wg.weight == 0 {
			continue
		}
		total = total.Add(wg.goal.Force(a, dt).Mult(wg.weight))
	}
	if a.MaxAcceleration > 0 {
		total = total.Clamp(a.MaxAcceleration)
	}
	return total
}
