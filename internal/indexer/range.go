package indexer

import "fmt"

// BlockRange is an inclusive block range.
type BlockRange struct {
	From uint64
	To   uint64
}

// Len is the number of blocks in the range.
func (r BlockRange) Len() uint64 {
	return r.To - r.From + 1
}

// SplitRange cuts [from, to] into consecutive ranges of at most batchSize blocks.
func SplitRange(from, to, batchSize uint64) ([]BlockRange, error) {
	if batchSize == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block must be >= from block")
	}

	ranges := make([]BlockRange, 0, (to-from)/batchSize+1)
	for start := from; ; {
		r, _ := NextRange(start, to, batchSize)
		ranges = append(ranges, r)
		if r.To == to {
			return ranges, nil
		}
		start = r.To + 1
	}
}

// NextRange is the range a follower fetches when next is its first unseen
// block and head the chain tip. It is capped at maxRange blocks, and ok is
// false when next is past head.
func NextRange(next, head, maxRange uint64) (r BlockRange, ok bool) {
	if next > head || maxRange == 0 {
		return BlockRange{}, false
	}
	r = BlockRange{From: next, To: head}
	if r.Len() > maxRange {
		r.To = next + maxRange - 1
	}
	return r, true
}
