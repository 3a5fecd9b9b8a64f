package component

import "strings"

// ColliderType is the physics category of a collision body. Values are bit
// flags so they can double as chipmunk filter categories.
type ColliderType uint32

const (
	ColliderObstacle ColliderType = 1 << iota
	ColliderPlayer
	ColliderEnemy
	ColliderObject
)

var colliderNames = map[ColliderType]string{
	ColliderObstacle: "obstacle",
	ColliderPlayer:   "player",
	ColliderEnemy:    "enemy",
	ColliderObject:   "object",
}

// AllColliderTypes lists every category in bit order.
var AllColliderTypes = []ColliderType{ColliderObstacle, ColliderPlayer, ColliderEnemy, ColliderObject}

// definedCollisions lists the categories each category physically collides with.
var definedCollisions = map[ColliderType][]ColliderType{
	ColliderPlayer: {ColliderObstacle, ColliderEnemy},
	ColliderEnemy:  {ColliderObstacle, ColliderPlayer},
}

// requestedContactNotifications lists the categories whose contacts each
// category wants to hear about.
var requestedContactNotifications = map[ColliderType][]ColliderType{
	ColliderPlayer: {ColliderObstacle, ColliderEnemy},
	ColliderEnemy:  {ColliderObstacle, ColliderPlayer},
	ColliderObject: {ColliderPlayer},
}

func (c ColliderType) String() string {
	if name, ok := colliderNames[c]; ok {
		return name
	}
	var parts []string
	for _, t := range AllColliderTypes {
		if c&t != 0 {
			parts = append(parts, colliderNames[t])
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseColliderType accepts the category names used in prefab files.
func ParseColliderType(s string) (ColliderType, bool) {
	for t, name := range colliderNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return t, true
		}
	}
	return 0, false
}

func maskOf(types []ColliderType) ColliderType {
	var mask ColliderType
	for _, t := range types {
		mask |= t
	}
	return mask
}

// CollisionMask is the set of categories c physically collides with.
func (c ColliderType) CollisionMask() ColliderType {
	return maskOf(definedCollisions[c])
}

// ContactMask is the set of categories c wants contact notifications for.
func (c ColliderType) ContactMask() ColliderType {
	return maskOf(requestedContactNotifications[c])
}

// NotifyOnContactWith reports whether c wants to hear about contacts with other.
func (c ColliderType) NotifyOnContactWith(other ColliderType) bool {
	return c.ContactMask()&other != 0
}

// Collides reports whether a and b resolve as a physical collision. Either
// side listing the other is enough.
func Collides(a, b ColliderType) bool {
	return a.CollisionMask()&b != 0 || b.CollisionMask()&a != 0
}

// Interacts reports whether a and b touch at all, physically or as a
// notified contact.
func Interacts(a, b ColliderType) bool {
	return Collides(a, b) || a.NotifyOnContactWith(b) || b.NotifyOnContactWith(a)
}

// FilterMask is the physics filter mask for c: every category it interacts
// with from either side of the tables.
func (c ColliderType) FilterMask() ColliderType {
	var mask ColliderType
	for _, other := range AllColliderTypes {
		if Interacts(c, other) {
			mask |= other
		}
	}
	return mask
}
