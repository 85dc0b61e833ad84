package template

// BlockKind identifies which component renders a block.
type BlockKind string

// Known block kinds. Anything else renders as a "Component not found" placeholder.
const (
	KindWelcomeHeader BlockKind = "welcome_header"
	KindText          BlockKind = "text"
	KindButton        BlockKind = "button"
	KindDivider       BlockKind = "divider"
	KindMarkdown      BlockKind = "markdown"
)

// Kinds returns all known block kinds in palette order.
func Kinds() []BlockKind {
	return []BlockKind{
		KindWelcomeHeader,
		KindText,
		KindButton,
		KindDivider,
		KindMarkdown,
	}
}

// Known reports whether k is one of the known block kinds.
func (k BlockKind) Known() bool {
	switch k {
	case KindWelcomeHeader, KindText, KindButton, KindDivider, KindMarkdown:
		return true
	}
	return false
}

// Block is a single positioned content block.
// Content is optional and interpreted per kind: markdown source for
// KindMarkdown, a label for KindButton, body text for KindText.
type Block struct {
	ID      string    `json:"id"`
	Kind    BlockKind `json:"kind"`
	Content string    `json:"content,omitempty"`
	Order   int       `json:"order"`
}

// DefaultBlocks returns the fixed welcome template as a block collection.
func DefaultBlocks() []Block {
	return []Block{{ID: "welcome", Kind: KindWelcomeHeader, Order: 0}}
}
