// Package mansion models the house the detective walks through: a binary tree of rooms, some holding a clue.
package mansion

import (
	"github.com/myrjola/detectivequest/internal/errors"
	"iter"
	"log/slog"
)

var ErrInvalidLayout = errors.NewSentinel("invalid mansion layout")

// Room is what the exploration loop can learn about the room the detective stands in.
type Room interface {
	Name() string
	// HasClue reports whether the room holds a clue. ClueText is empty otherwise.
	HasClue() bool
	ClueText() string
	// Left returns the room through the left door, if there is one.
	Left() (Room, bool)
	// Right returns the room through the right door, if there is one.
	Right() (Room, bool)
}

// Layout describes a room and, recursively, the rooms behind its left and right doors.
type Layout struct {
	Name  string  `yaml:"name"`
	Clue  string  `yaml:"clue,omitempty"`
	Left  *Layout `yaml:"left,omitempty"`
	Right *Layout `yaml:"right,omitempty"`
}

type room struct {
	name  string
	clue  string
	left  *room
	right *room
}

func (r *room) Name() string     { return r.name }
func (r *room) HasClue() bool    { return r.clue != "" }
func (r *room) ClueText() string { return r.clue }

func (r *room) Left() (Room, bool) {
	if r.left == nil {
		return nil, false
	}
	return r.left, true
}

func (r *room) Right() (Room, bool) {
	if r.right == nil {
		return nil, false
	}
	return r.right, true
}

// Build turns a layout into rooms and returns the entrance. Every room needs a name and names must be unique so the
// player can tell the doors apart.
func Build(layout Layout) (Room, error) {
	seen := make(map[string]struct{})
	var errorList []error
	entrance := build(&layout, "entrance", seen, &errorList)
	if len(errorList) != 0 {
		return nil, errors.Join(errorList...)
	}
	return entrance, nil
}

func build(layout *Layout, path string, seen map[string]struct{}, errorList *[]error) *room {
	if layout == nil {
		return nil
	}
	switch _, duplicate := seen[layout.Name]; {
	case layout.Name == "":
		*errorList = append(*errorList, errors.Wrap(ErrInvalidLayout, "room without name", slog.String("path", path)))
	case duplicate:
		*errorList = append(*errorList, errors.Wrap(ErrInvalidLayout, "duplicate room name",
			slog.String("path", path), slog.String("name", layout.Name)))
	default:
		seen[layout.Name] = struct{}{}
	}
	return &room{
		name:  layout.Name,
		clue:  layout.Clue,
		left:  build(layout.Left, path+".left", seen, errorList),
		right: build(layout.Right, path+".right", seen, errorList),
	}
}

// Walk yields start and every room reachable from it, depth first, left before right.
func Walk(start Room) iter.Seq[Room] {
	return func(yield func(Room) bool) {
		walk(start, yield)
	}
}

func walk(r Room, yield func(Room) bool) bool {
	if !yield(r) {
		return false
	}
	if left, ok := r.Left(); ok && !walk(left, yield) {
		return false
	}
	if right, ok := r.Right(); ok && !walk(right, yield) {
		return false
	}
	return true
}
