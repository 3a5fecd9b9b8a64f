package steering

// Weights tunes the goal mix of enemy behaviors.
type Weights struct {
	ReachTargetSpeed        float64 `yaml:"reach_target_speed"`
	AvoidObstacles          float64 `yaml:"avoid_obstacles"`
	AvoidPredictionTime     float64 `yaml:"avoid_prediction_time"`
	Intercept               float64 `yaml:"intercept"`
	InterceptPredictionTime float64 `yaml:"intercept_prediction_time"`
	Flee                    float64 `yaml:"flee"`
	Wander                  float64 `yaml:"wander"`
}

func DefaultWeights() Weights {
	return Weights{
		ReachTargetSpeed:        0.25,
		AvoidObstacles:          1.0,
		AvoidPredictionTime:     1.0,
		Intercept:               0.9,
		InterceptPredictionTime: 1.0,
		Flee:                    0.9,
		Wander:                  0.5,
	}
}

func baseBehavior(agent *Agent, obstacles []*PolygonObstacle, w Weights) *Behavior {
	b := NewBehavior()
	b.SetWeight(w.ReachTargetSpeed, ReachTargetSpeed{Speed: agent.MaxSpeed})
	if len(obstacles) > 0 {
		b.SetWeight(w.AvoidObstacles, AvoidObstacles{Obstacles: obstacles, MaxPredictionTime: w.AvoidPredictionTime})
	}
	return b
}

// WanderBehavior roams randomly while avoiding obstacles.
func WanderBehavior(agent *Agent, obstacles []*PolygonObstacle, w Weights, seed uint64) *Behavior {
	return baseBehavior(agent, obstacles, w).SetWeight(w.Wander, NewWander(agent.MaxSpeed, seed))
}

// FollowBehavior intercepts target while avoiding obstacles.
func FollowBehavior(agent, target *Agent, obstacles []*PolygonObstacle, w Weights) *Behavior {
	return baseBehavior(agent, obstacles, w).SetWeight(w.Intercept, Intercept{Target: target, MaxPredictionTime: w.InterceptPredictionTime})
}

// EscapeBehavior flees from target while avoiding obstacles.
func EscapeBehavior(agent, target *Agent, obstacles []*PolygonObstacle, w Weights) *Behavior {
	return baseBehavior(agent, obstacles, w).SetWeight(w.Flee, Flee{Target: target})
}
