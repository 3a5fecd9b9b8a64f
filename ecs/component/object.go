package component

import "fmt"

// ObjectKind is the collectible type of an object entity.
type ObjectKind int

const (
	ObjectCoin ObjectKind = iota + 1
	ObjectKey
	ObjectHeart
	ObjectClock
)

var objectKindNames = map[ObjectKind]string{
	ObjectCoin:  "coin",
	ObjectKey:   "key",
	ObjectHeart: "heart",
	ObjectClock: "clock",
}

func (k ObjectKind) String() string {
	if name, ok := objectKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("object(%d)", int(k))
}

func ParseObjectKind(s string) (ObjectKind, error) {
	for kind, name := range objectKindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("object: unknown kind %q", s)
}

// Object is a collectible. Collected flips once and never resets.
type Object struct {
	Kind      ObjectKind
	Collected bool
}

var ObjectComponent = NewComponent[Object]()
