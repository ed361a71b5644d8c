// Package catalog stores the clues collected during an investigation as an ordered set.
package catalog

import (
	"iter"
	"slices"
	"strings"
)

// nilNode marks an absent child in the node arena.
const nilNode int32 = -1

type node struct {
	text   string
	left   int32
	right  int32
	height int32
}

// Catalog is an ordered, duplicate-free collection of clue descriptions.
//
// Clues are kept in an AVL tree whose nodes live in a slice owned by the Catalog, so dropping the Catalog releases
// every clue at once. Ordering is byte-wise lexicographic, the same as Go string comparison.
//
// A Catalog is not safe for concurrent use.
type Catalog struct {
	nodes []node
	root  int32
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{
		nodes: nil,
		root:  nilNode,
	}
}

// Insert adds text to the catalog unless an equal clue is already present. It reports whether text was added.
func (c *Catalog) Insert(text string) bool {
	var inserted bool
	c.root = c.insert(c.root, text, &inserted)
	return inserted
}

func (c *Catalog) insert(n int32, text string, inserted *bool) int32 {
	if n == nilNode {
		c.nodes = append(c.nodes, node{text: text, left: nilNode, right: nilNode, height: 1})
		*inserted = true
		return int32(len(c.nodes) - 1) //nolint:gosec // catalog size is bounded by the number of rooms
	}

	// The recursive call may grow c.nodes, so the child index is stored only after it returns.
	switch cmp := strings.Compare(text, c.nodes[n].text); {
	case cmp < 0:
		child := c.insert(c.nodes[n].left, text, inserted)
		c.nodes[n].left = child
	case cmp > 0:
		child := c.insert(c.nodes[n].right, text, inserted)
		c.nodes[n].right = child
	default:
		return n
	}

	if !*inserted {
		return n
	}
	return c.rebalance(n)
}

func (c *Catalog) height(n int32) int32 {
	if n == nilNode {
		return 0
	}
	return c.nodes[n].height
}

func (c *Catalog) update(n int32) {
	c.nodes[n].height = 1 + max(c.height(c.nodes[n].left), c.height(c.nodes[n].right))
}

func (c *Catalog) balance(n int32) int32 {
	return c.height(c.nodes[n].left) - c.height(c.nodes[n].right)
}

func (c *Catalog) rotateRight(y int32) int32 {
	x := c.nodes[y].left
	c.nodes[y].left = c.nodes[x].right
	c.nodes[x].right = y
	c.update(y)
	c.update(x)
	return x
}

func (c *Catalog) rotateLeft(x int32) int32 {
	y := c.nodes[x].right
	c.nodes[x].right = c.nodes[y].left
	c.nodes[y].left = x
	c.update(x)
	c.update(y)
	return y
}

func (c *Catalog) rebalance(n int32) int32 {
	c.update(n)
	switch b := c.balance(n); {
	case b > 1:
		if c.balance(c.nodes[n].left) < 0 {
			c.nodes[n].left = c.rotateLeft(c.nodes[n].left)
		}
		return c.rotateRight(n)
	case b < -1:
		if c.balance(c.nodes[n].right) > 0 {
			c.nodes[n].right = c.rotateRight(c.nodes[n].right)
		}
		return c.rotateLeft(n)
	}
	return n
}

// Contains reports whether a clue with exactly this text has been inserted.
func (c *Catalog) Contains(text string) bool {
	for n := c.root; n != nilNode; {
		switch cmp := strings.Compare(text, c.nodes[n].text); {
		case cmp < 0:
			n = c.nodes[n].left
		case cmp > 0:
			n = c.nodes[n].right
		default:
			return true
		}
	}
	return false
}

// Len returns the number of distinct clues.
func (c *Catalog) Len() int {
	return len(c.nodes)
}

// InOrder yields every clue in strictly ascending order.
//
// The sequence is lazy and can be ranged over any number of times. The catalog must not be modified while a
// sequence is being consumed.
func (c *Catalog) InOrder() iter.Seq[string] {
	return func(yield func(string) bool) {
		stack := make([]int32, 0, c.height(c.root))
		for n := c.root; n != nilNode || len(stack) > 0; {
			for n != nilNode {
				stack = append(stack, n)
				n = c.nodes[n].left
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(c.nodes[n].text) {
				return
			}
			n = c.nodes[n].right
		}
	}
}

// Clues returns a snapshot of the clues in ascending order.
func (c *Catalog) Clues() []string {
	return slices.Collect(c.InOrder())
}
