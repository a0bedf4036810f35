package vdom

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents an element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
)

// Props represents the attributes of a VNode
type Props map[string]any

// VNode represents a virtual node. Once built it is never modified.
type VNode struct {
	// Kind determines the type of this node
	Kind VKind

	// Tag is the element tag name (e.g., "div", "span")
	// Only used when Kind == KindElement
	Tag string

	// Props contains all attributes for this node
	Props Props

	// Kids contains child nodes
	// For KindText, this is nil
	Kids []VNode

	// Key identifies the node among its siblings
	// Empty string means no key
	Key string

	// Text content (only used when Kind == KindText)
	Text string
}

// NewElement creates a new element VNode. Nil children are skipped so
// optional sections can be passed inline.
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{
		Kind: KindFragment,
		Kids: collect(children),
	}
}

// Map builds one node per item
func Map[T any](items []T, fn func(int, T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		out = append(out, fn(i, item))
	}
	return out
}

// If returns node when cond holds, nil otherwise
func If(cond bool, node func() *VNode) *VNode {
	if !cond {
		return nil
	}
	return node()
}

// WithKey returns a copy of v keyed by key
func (v VNode) WithKey(key string) *VNode {
	v.Key = key
	return &v
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// IsFragment returns true if this is a fragment node
func (v VNode) IsFragment() bool {
	return v.Kind == KindFragment
}

// GetKey returns the key of this node, handling the Props map safely
func (v VNode) GetKey() string {
	if v.Props != nil {
		if key, ok := v.Props["key"].(string); ok {
			return key
		}
	}
	return v.Key
}

// Find returns the first node in the tree for which match holds
func (v *VNode) Find(match func(*VNode) bool) *VNode {
	if v == nil {
		return nil
	}
	if match(v) {
		return v
	}
	for i := range v.Kids {
		if found := v.Kids[i].Find(match); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates every text node below v
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	var s string
	for i := range v.Kids {
		s += v.Kids[i].TextContent()
	}
	return s
}

func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}
