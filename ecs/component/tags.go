package component

// ObstacleTag marks static level geometry.
type ObstacleTag struct{}

var ObstacleTagComponent = NewComponent[ObstacleTag]()
