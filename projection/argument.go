package projection

import (
	"github.com/gaborage/go-devkit/classify"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
)

// ArgumentKind is the shape of a collection element, map key or map value.
type ArgumentKind string

const (
	ArgMap        ArgumentKind = "map"
	ArgCollection ArgumentKind = "collection"
	ArgEnum       ArgumentKind = "enum"
	ArgSimple     ArgumentKind = "simple"
	ArgRef        ArgumentKind = "ref"
)

// ResolveArgument classifies a type argument. The order is map, collection,
// enum, supported simple type, then the ref fallback; a missing argument
// resolves to ref.
func ResolveArgument(t *model.TypeDescriptor) ArgumentKind {
	if t == nil {
		return ArgRef
	}
	c, err := classify.Classify(t)
	if err != nil {
		return ArgRef
	}
	switch {
	case c.Map:
		return ArgMap
	case c.Collection:
		return ArgCollection
	case c.Enum:
		return ArgEnum
	case c.SupportedSimple:
		return ArgSimple
	default:
		return ArgRef
	}
}

// Argument is one resolved type argument. Inner is set when the argument is
// itself a collection or map and describes the next nesting level.
type Argument struct {
	Kind  ArgumentKind
	Type  *model.TypeDescriptor
	Inner *Container
}

// Nested reports whether the argument recurses into another container.
func (a Argument) Nested() bool {
	return a.Inner != nil
}

// Container describes one level of a collection or map: the name of its
// item elements and the shape of each item.
type Container struct {
	Type *model.TypeDescriptor
	Map  bool
	// Item is the element name of each entry.
	Item string
	// Element is the entry shape of a collection.
	Element Argument
	// Key and Value are the entry shapes of a map. Keys never nest: a
	// collection or map key falls back to key-ref.
	Key   Argument
	Value Argument
}

// NewContainer builds the container tree of a collection or map type whose
// entries are named item. Nested containers are named inner-<item>.
func NewContainer(t *model.TypeDescriptor, item string) *Container {
	c := &Container{Type: t, Item: item, Map: classify.IsMap(t)}
	if c.Map {
		c.Key = resolve(t.Arg(0), "")
		if c.Key.Kind == ArgMap || c.Key.Kind == ArgCollection {
			c.Key = Argument{Kind: ArgRef, Type: c.Key.Type}
		}
		c.Value = resolve(t.Arg(1), naming.Inner(item))
		return c
	}
	c.Element = resolve(t.Arg(0), naming.Inner(item))
	return c
}

func resolve(t *model.TypeDescriptor, inner string) Argument {
	a := Argument{Kind: ResolveArgument(t), Type: t}
	if inner != "" && (a.Kind == ArgMap || a.Kind == ArgCollection) {
		a.Inner = NewContainer(t, inner)
	}
	return a
}
