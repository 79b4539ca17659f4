package engine

import (
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// Partition splits reports (oldest first) into consecutive blocks of
// constants.BlockSize. The last block is partial when len(reports) is not a
// multiple of the block size; it is the currently open window.
func Partition(reports []models.Report) []models.Block {
	if len(reports) == 0 {
		return nil
	}

	blocks := make([]models.Block, 0, (len(reports)+constants.BlockSize-1)/constants.BlockSize)
	for pos, r := range reports {
		idx := pos / constants.BlockSize
		if idx == len(blocks) {
			blocks = append(blocks, models.Block{
				Index:   idx,
				Reports: make([]models.Report, 0, constants.BlockSize),
			})
		}
		b := &blocks[idx]
		b.Reports = append(b.Reports, r)
		if isCompleted(r.Status) {
			b.Completed++
		}
	}
	return blocks
}

// Counts returns the completed count of every block.
func Counts(blocks []models.Block) []int {
	counts := make([]int, len(blocks))
	for i, b := range blocks {
		counts[i] = b.Completed
	}
	return counts
}

// LastBlock returns the size and completed count of the trailing block,
// full or partial. An empty history yields (0, 0).
func LastBlock(reports []models.Report) (size, completed int) {
	blocks := Partition(reports)
	if len(blocks) == 0 {
		return 0, 0
	}
	last := blocks[len(blocks)-1]
	return last.Size(), last.Completed
}

func isCompleted(s models.Status) bool {
	switch s {
	case models.StatusCompleted:
		return true
	case models.StatusIncomplete, models.StatusForgotToMark:
		return false
	default:
		return false
	}
}
