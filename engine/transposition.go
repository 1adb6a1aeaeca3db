package engine

import (
	"unsafe"

	mg "heron/heronmg"
)

// Bound flags for transposition entries.
const (
	AlphaFlag int8 = iota // score is an upper bound
	BetaFlag              // score is a lower bound
	ExactFlag
)

const (
	ttSizeMB    = 64
	clusterSize = 4
)

type ttEntry struct {
	hash  uint64
	move  mg.Move
	score int32
	depth int8
	flag  int8
}

// transTable is a fixed-size transposition table bucketed into clusters of
// four entries. Within a cluster, stores prefer the same hash, then an
// empty slot, then the shallowest entry.
type transTable struct {
	entries      []ttEntry
	clusterCount uint64
}

func newTransTable() *transTable {
	entrySize := uint64(unsafe.Sizeof(ttEntry{}))
	clusterCount := ttSizeMB * 1024 * 1024 / (entrySize * clusterSize)
	return &transTable{
		entries:      make([]ttEntry, clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

func (tt *transTable) clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

// probe returns the entry stored for hash, if any.
func (tt *transTable) probe(hash uint64) (*ttEntry, bool) {
	base := int(hash % tt.clusterCount * clusterSize)
	for i := 0; i < clusterSize; i++ {
		if e := &tt.entries[base+i]; e.hash == hash {
			return e, true
		}
	}
	return nil, false
}

// usable decides whether a probed entry can cut off the current node. Mate
// scores are stored relative to the entry's node and re-rooted with ply
// here.
func (e *ttEntry) usable(depth, ply int8, alpha, beta int32) (bool, int32) {
	if e.depth < depth {
		return false, 0
	}
	score := e.score
	if score > MateThreshold {
		score -= int32(ply)
	} else if score < -MateThreshold {
		score += int32(ply)
	}
	switch e.flag {
	case ExactFlag:
		return true, score
	case AlphaFlag:
		if score <= alpha {
			return true, alpha
		}
	case BetaFlag:
		if score >= beta {
			return true, beta
		}
	}
	return false, 0
}

func (tt *transTable) store(hash uint64, depth, ply int8, move mg.Move, score int32, flag int8) {
	base := int(hash % tt.clusterCount * clusterSize)

	if score > MateThreshold {
		score += int32(ply)
	} else if score < -MateThreshold {
		score -= int32(ply)
	}

	target := -1
	for i := 0; i < clusterSize; i++ {
		if tt.entries[base+i].hash == hash {
			target = base + i
			break
		}
	}
	if target == -1 {
		for i := 0; i < clusterSize; i++ {
			if tt.entries[base+i].hash == 0 {
				target = base + i
				break
			}
		}
	}
	if target == -1 {
		target = base
		for i := 1; i < clusterSize; i++ {
			if tt.entries[base+i].depth < tt.entries[target].depth {
				target = base + i
			}
		}
	}

	tt.entries[target] = ttEntry{hash: hash, move: move, score: score, depth: depth, flag: flag}
}
