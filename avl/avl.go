package avl

import (
	"math"
	"unsafe"
)

const nullPtr uint64 = math.MaxUint64

// NodeSize is the number of payload bytes a free block lends to the index.
const NodeSize = uint64(unsafe.Sizeof(node{}))

// node lives inside the payload of the free block it describes.
// size caches the block size; left/right are offsets from the tree base.
type node struct {
	size   uint64
	height int32
	left   uint64
	right  uint64
}

// Tree is a height-balanced search tree over free blocks,
// keyed by (size, address).
type Tree struct {
	base unsafe.Pointer
	root uint64
}

// TreeInit ...
func TreeInit(t *Tree, base unsafe.Pointer) {
	t.base = base
	t.root = nullPtr
}

func (t *Tree) node(addr uint64) *node {
	return (*node)(unsafe.Pointer(uintptr(t.base) + uintptr(addr)))
}

// Compares by size; tie-breaks by address to ensure a strict total order.
func (t *Tree) cmp(a uint64, b uint64) int {
	na := t.node(a)
	nb := t.node(b)
	if na.size < nb.size {
		return -1
	}
	if na.size > nb.size {
		return 1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (t *Tree) height(addr uint64) int32 {
	if addr == nullPtr {
		return 0
	}
	return t.node(addr).height
}

func (t *Tree) balance(addr uint64) int32 {
	if addr == nullPtr {
		return 0
	}
	n := t.node(addr)
	return t.height(n.right) - t.height(n.left)
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func (t *Tree) updateHeight(addr uint64) {
	n := t.node(addr)
	n.height = maxInt32(t.height(n.left), t.height(n.right)) + 1
}

func (t *Tree) rotateLeft(addr uint64) uint64 {
	if addr == nullPtr || t.node(addr).right == nullPtr {
		return addr
	}

	n := t.node(addr)
	newRoot := n.right
	nr := t.node(newRoot)

	n.right = nr.left
	nr.left = addr

	t.updateHeight(addr)
	t.updateHeight(newRoot)

	return newRoot
}

func (t *Tree) rotateRight(addr uint64) uint64 {
	if addr == nullPtr || t.node(addr).left == nullPtr {
		return addr
	}

	n := t.node(addr)
	newRoot := n.left
	nl := t.node(newRoot)

	n.left = nl.right
	nl.right = addr

	t.updateHeight(addr)
	t.updateHeight(newRoot)

	return newRoot
}

func (t *Tree) insert(root uint64, addr uint64) uint64 {
	if root == nullPtr {
		return addr
	}

	rn := t.node(root)
	if t.cmp(addr, root) < 0 {
		rn.left = t.insert(rn.left, addr)
	} else {
		rn.right = t.insert(rn.right, addr)
	}

	t.updateHeight(root)
	b := t.balance(root)

	switch {
	case b < -1 && t.balance(rn.left) < 0:
		return t.rotateRight(root)
	case b > 1 && t.balance(rn.right) > 0:
		return t.rotateLeft(root)
	case b < -1 && t.balance(rn.left) > 0:
		rn.left = t.rotateLeft(rn.left)
		return t.rotateRight(root)
	case b > 1 && t.balance(rn.right) < 0:
		rn.right = t.rotateRight(rn.right)
		return t.rotateLeft(root)
	}

	return root
}

func (t *Tree) minValue(root uint64) uint64 {
	current := root
	for t.node(current).left != nullPtr {
		current = t.node(current).left
	}
	return current
}

func (t *Tree) delete(root uint64, addr uint64) uint64 {
	if root == nullPtr {
		return root
	}

	rn := t.node(root)
	c := t.cmp(addr, root)

	if c < 0 {
		rn.left = t.delete(rn.left, addr)
	} else if c > 0 {
		rn.right = t.delete(rn.right, addr)
	} else if rn.left == nullPtr || rn.right == nullPtr {
		temp := rn.left
		if temp == nullPtr {
			temp = rn.right
		}
		root = temp
	} else {
		succ := t.minValue(rn.right)

		// Detach the successor first, then graft it with the original
		// left subtree and the post-deletion right subtree.
		detached := t.delete(rn.right, succ)

		sn := t.node(succ)
		sn.left = rn.left
		sn.right = detached

		root = succ
	}

	if root == nullPtr {
		return nullPtr
	}

	t.updateHeight(root)
	rn = t.node(root)
	b := t.balance(root)

	switch {
	case b < -1 && t.balance(rn.left) <= 0:
		return t.rotateRight(root)
	case b > 1 && t.balance(rn.right) >= 0:
		return t.rotateLeft(root)
	case b < -1 && t.balance(rn.left) > 0:
		rn.left = t.rotateLeft(rn.left)
		return t.rotateRight(root)
	case b > 1 && t.balance(rn.right) < 0:
		rn.right = t.rotateRight(rn.right)
		return t.rotateLeft(root)
	}

	return root
}

// InitNode prepares the record inside the payload at addr
// before the node enters the tree.
func (t *Tree) InitNode(addr uint64, size uint64) {
	n := t.node(addr)
	n.size = size
	n.height = 1
	n.left = nullPtr
	n.right = nullPtr
}

// Insert ...
func (t *Tree) Insert(addr uint64) {
	t.root = t.insert(t.root, addr)
}

// Delete ...
func (t *Tree) Delete(addr uint64) {
	t.root = t.delete(t.root, addr)
}

// BestFit returns the node with the smallest size >= size,
// ties broken toward the smallest address.
func (t *Tree) BestFit(size uint64) (uint64, bool) {
	best := nullPtr
	current := t.root
	for current != nullPtr {
		n := t.node(current)
		if n.size >= size {
			best = current
			current = n.left
		} else {
			current = n.right
		}
	}
	if best == nullPtr {
		return 0, false
	}
	return best, true
}

// PopBestFit ...
func (t *Tree) PopBestFit(size uint64) (uint64, bool) {
	addr, ok := t.BestFit(size)
	if !ok {
		return 0, false
	}
	t.root = t.delete(t.root, addr)
	return addr, true
}

// Size returns the cached block size of the node at addr.
func (t *Tree) Size(addr uint64) uint64 {
	return t.node(addr).size
}

// Contents returns the node addresses in key order.
func (t *Tree) Contents() []uint64 {
	var result []uint64
	t.walk(t.root, &result)
	return result
}

func (t *Tree) walk(addr uint64, out *[]uint64) {
	if addr == nullPtr {
		return
	}
	n := t.node(addr)
	t.walk(n.left, out)
	*out = append(*out, addr)
	t.walk(n.right, out)
}
