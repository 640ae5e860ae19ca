package board

import (
	"sync"

	"github.com/tartampluch/go-eventboard/internal/engine"
)

// FeedbackBoard pages through the feedback list.
type FeedbackBoard struct {
	mu       sync.Mutex
	feedback []engine.Feedback
	pager    *engine.Pager
}

// NewFeedbackBoard returns an empty board showing pageSize items per page.
func NewFeedbackBoard(pageSize int) *FeedbackBoard {
	return &FeedbackBoard{pager: engine.NewPager(pageSize)}
}

// SetFeedback replaces the list with a new snapshot and re-clamps the page.
func (b *FeedbackBoard) SetFeedback(feedback []engine.Feedback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.feedback = feedback
	b.pager.SetLen(len(feedback))
}

// Next advances one page, staying on the last page.
func (b *FeedbackBoard) Next() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Next()
}

// Prev goes back one page, staying on the first page.
func (b *FeedbackBoard) Prev() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Prev()
}

// View renders the current page.
func (b *FeedbackBoard) View() PageView[engine.Feedback] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return pageView(b.pager, b.feedback)
}
