package wire

// Shape describes the wire value a native value is expected to become.
type Shape struct {
	Tag Tag
	// Optional shapes encode a nil native value as Void.
	Optional bool
	// MaxLen bounds the byte length of strings, symbols and byte arrays.
	// Zero means unbounded.
	MaxLen int
	// FixedLen requires an exact byte length. Zero means any length.
	FixedLen int
	// NonEmpty rejects zero-length strings and byte arrays.
	NonEmpty bool
	// Elem is the element shape of a Vec.
	Elem *Shape
	// Key and Val are the entry shapes of a generic Map.
	Key *Shape
	Val *Shape
	// Fields turns a Map shape into a struct: symbol keys with a fixed set
	// of field shapes, emitted in ascending key order.
	Fields []Field
}

// Field is a named member of a struct-shaped map.
type Field struct {
	Name  string
	Shape Shape
}

func Of(tag Tag) Shape { return Shape{Tag: tag} }

func VecOf(elem Shape) Shape { return Shape{Tag: TagVec, Elem: &elem} }

func MapOf(key, val Shape) Shape {
	return Shape{Tag: TagMap, Key: &key, Val: &val}
}

func StructOf(fields ...Field) Shape {
	return Shape{Tag: TagMap, Fields: fields}
}

func F(name string, shape Shape) Field { return Field{Name: name, Shape: shape} }

// FixedBytes is a byte array of exactly n bytes.
func FixedBytes(n int) Shape { return Shape{Tag: TagBytes, FixedLen: n} }

// BoundedString is a string of at most n bytes.
func BoundedString(n int) Shape { return Shape{Tag: TagString, MaxLen: n} }

// OptionalOf marks a shape as accepting nil.
func OptionalOf(s Shape) Shape {
	s.Optional = true
	return s
}

// Accepts reports whether v structurally fits the shape. Void is accepted
// for optional shapes.
func (s Shape) Accepts(v Value) bool {
	if v == nil {
		return false
	}
	if v.Tag() == TagVoid {
		return s.Tag == TagVoid || s.Optional
	}
	if v.Tag() != s.Tag {
		return false
	}
	switch val := v.(type) {
	case Vec:
		if s.Elem == nil {
			return true
		}
		for _, e := range val {
			if !s.Elem.Accepts(e) {
				return false
			}
		}
	case Map:
		if len(s.Fields) > 0 {
			for _, f := range s.Fields {
				fv, ok := val.Get(f.Name)
				if !ok {
					if !f.Shape.Optional {
						return false
					}
					continue
				}
				if !f.Shape.Accepts(fv) {
					return false
				}
			}
		}
	}
	return true
}
