package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NodeKind identifies the variant of a KDNode
type NodeKind int

const (
	NodeEmpty NodeKind = iota
	NodeLeaf
	NodeInner
)

// KDNode is one node of the spatial index.
// Leaves hold shapes directly; inner nodes hold two children.
// Box tightly encloses every shape reachable beneath the node.
type KDNode struct {
	Kind   NodeKind
	Box    core.AABB
	Shapes []Shape // Leaf only
	Left   *KDNode // Inner only: shapes reaching below the split
	Right  *KDNode // Inner only: shapes reaching at or above the split
}

// KDTree is a bounding-volume hierarchy split at spatial midpoints.
// Shapes straddling a split are stored on both sides, so no shape is ever
// dropped and nodes never need clipped geometry.
type KDTree struct {
	Root *KDNode
}

// Sets smaller than this are stored in a leaf and tested by brute force
const leafThreshold = 3

// NewKDTree builds the index over shapes. The input slice is not modified.
func NewKDTree(shapes []Shape) *KDTree {
	if len(shapes) == 0 {
		return &KDTree{Root: &KDNode{Kind: NodeEmpty}}
	}

	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &KDTree{Root: buildKDNode(shapesCopy)}
}

// unionBox returns the bounding box enclosing all shapes
func unionBox(shapes []Shape) core.AABB {
	box := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		box = box.Absorb(shape.BoundingBox())
	}
	return box
}

func buildKDNode(shapes []Shape) *KDNode {
	if len(shapes) == 0 {
		return &KDNode{Kind: NodeEmpty}
	}

	box := unionBox(shapes)
	if len(shapes) < leafThreshold {
		return &KDNode{Kind: NodeLeaf, Box: box, Shapes: shapes}
	}

	axis := box.LongestAxis()
	split := (box.Min.Get(axis) + box.Max.Get(axis)) / 2

	low, high := partitionShapes(shapes, axis, split)

	// Splitting made no progress, e.g. everything straddles the plane
	if len(low) == len(shapes) || len(high) == len(shapes) {
		return &KDNode{Kind: NodeLeaf, Box: box, Shapes: shapes}
	}

	return &KDNode{
		Kind:  NodeInner,
		Box:   box,
		Left:  buildKDNode(low),
		Right: buildKDNode(high),
	}
}

// partitionShapes splits shapes around split on axis. A shape whose box
// spans the split value lands in both subsets.
func partitionShapes(shapes []Shape, axis core.Axis, split float64) (low, high []Shape) {
	for _, shape := range shapes {
		box := shape.BoundingBox()
		if box.Min.Get(axis) < split {
			low = append(low, shape)
		}
		if box.Max.Get(axis) >= split {
			high = append(high, shape)
		}
	}
	return low, high
}

// Hit returns the nearest intersection in [tMin, tMax]
func (tree *KDTree) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if tree == nil || tree.Root == nil {
		return material.HitRecord{}, false
	}
	return tree.Root.hit(ray, tMin, tMax)
}

func (node *KDNode) hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch node.Kind {
	case NodeLeaf:
		if !node.Box.Hit(ray, tMin, tMax) {
			return material.HitRecord{}, false
		}

		var closest material.HitRecord
		hitAnything := false
		closestSoFar := tMax
		for _, shape := range node.Shapes {
			if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
				hitAnything = true
				closestSoFar = hit.T
				closest = hit
			}
		}
		return closest, hitAnything

	case NodeInner:
		if !node.Box.Hit(ray, tMin, tMax) {
			return material.HitRecord{}, false
		}

		leftHit, leftOk := node.Left.hit(ray, tMin, tMax)
		rightHit, rightOk := node.Right.hit(ray, tMin, tMax)
		switch {
		case !leftOk:
			return rightHit, rightOk
		case !rightOk:
			return leftHit, true
		case rightHit.T < leftHit.T:
			return rightHit, true
		default:
			return leftHit, true
		}

	default:
		return material.HitRecord{}, false
	}
}

// BoundingBox returns the box of the root, or the zero box for an empty tree
func (tree *KDTree) BoundingBox() core.AABB {
	if tree.Root == nil {
		return core.AABB{}
	}
	return tree.Root.Box
}

// LeafBounds returns the boxes of every leaf
func (tree *KDTree) LeafBounds() []core.AABB {
	var boxes []core.AABB
	var walk func(node *KDNode)
	walk = func(node *KDNode) {
		switch node.Kind {
		case NodeLeaf:
			boxes = append(boxes, node.Box)
		case NodeInner:
			walk(node.Left)
			walk(node.Right)
		}
	}
	if tree.Root != nil {
		walk(tree.Root)
	}
	return boxes
}

// KDTreeStats describes the shape of a built tree
type KDTreeStats struct {
	TotalNodes      int
	LeafNodes       int
	EmptyNodes      int
	MaxDepth        int
	ShapeReferences int // Straddling shapes are counted once per leaf
}

// Stats returns statistics about the tree structure
func (tree *KDTree) Stats() KDTreeStats {
	var stats KDTreeStats
	if tree.Root != nil {
		tree.collectStats(tree.Root, 0, &stats)
	}
	return stats
}

func (tree *KDTree) collectStats(node *KDNode, depth int, stats *KDTreeStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	switch node.Kind {
	case NodeEmpty:
		stats.EmptyNodes++
	case NodeLeaf:
		stats.LeafNodes++
		stats.ShapeReferences += len(node.Shapes)
	case NodeInner:
		tree.collectStats(node.Left, depth+1, stats)
		tree.collectStats(node.Right, depth+1, stats)
	}
}
