package engine

// HistoryNode is one link of the move history. Nodes are immutable once
// created, so any number of boards may share a chain.
type HistoryNode struct {
	move Move
	prev *HistoryNode
	len  int
}

// Push returns a new head whose predecessor is h. h may be nil.
func (h *HistoryNode) Push(m Move) *HistoryNode {
	return &HistoryNode{move: m, prev: h, len: h.Len() + 1}
}

// Move returns the move stored in this node
func (h *HistoryNode) Move() Move {
	return h.move
}

// Prev returns the previous node, nil at the start of the chain
func (h *HistoryNode) Prev() *HistoryNode {
	return h.prev
}

// Len returns the number of moves in the chain ending at h
func (h *HistoryNode) Len() int {
	if h == nil {
		return 0
	}
	return h.len
}

// Moves walks the chain newest-to-oldest and returns it oldest-first
func (h *HistoryNode) Moves() []Move {
	moves := make([]Move, h.Len())
	i := len(moves) - 1
	for n := h; n != nil; n = n.prev {
		moves[i] = n.move
		i--
	}
	return moves
}
