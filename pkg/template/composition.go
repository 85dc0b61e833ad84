package template

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Composition is the editable block collection of a single composition session.
// Orders are kept dense (0..n-1) after every operation.
// A Composition is not safe for concurrent use.
type Composition struct {
	newID  func() string
	blocks []Block
}

// CompositionOption configures a Composition.
type CompositionOption func(*Composition)

// WithIDGenerator overrides the block ID generator (default: random UUID).
func WithIDGenerator(fn func() string) CompositionOption {
	return func(c *Composition) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewComposition creates a composition seeded with the given blocks.
// Seed blocks are sorted by order and renumbered.
func NewComposition(blocks []Block, opts ...CompositionOption) *Composition {
	c := &Composition{
		newID:  uuid.NewString,
		blocks: sortBlocks(blocks),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.renumber()
	return c
}

// Add appends a block of the given kind and returns it.
func (c *Composition) Add(kind BlockKind, content string) Block {
	b := Block{
		ID:      c.newID(),
		Kind:    kind,
		Content: content,
		Order:   len(c.blocks),
	}
	c.blocks = append(c.blocks, b)
	return b
}

// Remove deletes the block with the given ID.
func (c *Composition) Remove(id string) error {
	i := c.index(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	c.blocks = slices.Delete(c.blocks, i, i+1)
	c.renumber()
	return nil
}

// MoveUp swaps the block with its predecessor. Moving the first block is a no-op.
func (c *Composition) MoveUp(id string) error {
	i := c.index(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	if i > 0 {
		c.blocks[i-1], c.blocks[i] = c.blocks[i], c.blocks[i-1]
		c.renumber()
	}
	return nil
}

// MoveDown swaps the block with its successor. Moving the last block is a no-op.
func (c *Composition) MoveDown(id string) error {
	i := c.index(id)
	if i < 0 {
		return ErrBlockNotFound
	}
	if i < len(c.blocks)-1 {
		c.blocks[i+1], c.blocks[i] = c.blocks[i], c.blocks[i+1]
		c.renumber()
	}
	return nil
}

// Clear removes all blocks.
func (c *Composition) Clear() {
	c.blocks = nil
}

// Len returns the number of blocks.
func (c *Composition) Len() int {
	return len(c.blocks)
}

// Blocks returns a copy of the blocks in render order.
func (c *Composition) Blocks() []Block {
	return slices.Clone(c.blocks)
}

func (c *Composition) index(id string) int {
	return slices.IndexFunc(c.blocks, func(b Block) bool { return b.ID == id })
}

func (c *Composition) renumber() {
	for i := range c.blocks {
		c.blocks[i].Order = i
	}
}

// sortBlocks returns a copy of blocks stable-sorted by Order.
func sortBlocks(blocks []Block) []Block {
	sorted := slices.Clone(blocks)
	slices.SortStableFunc(sorted, func(a, b Block) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}
