package server

import (
	"sync"
	"time"
)

// Feedback is one logged user interaction, e.g. rating a guide
// explanation helpful or not.
type Feedback struct {
	Event     string            `json:"event"`
	Details   map[string]string `json:"details,omitempty"`
	Sentiment string            `json:"sentiment,omitempty"` // "positive" or "negative"
	At        time.Time         `json:"at"`
}

// FeedbackLog collects user feedback in memory. It is safe for
// concurrent use.
type FeedbackLog struct {
	mu      sync.Mutex
	records []Feedback
}

// NewFeedbackLog returns an empty feedback log.
func NewFeedbackLog() *FeedbackLog {
	return &FeedbackLog{}
}

// Add records one feedback entry, stamping it with the current time.
func (l *FeedbackLog) Add(f Feedback) {
	f.At = time.Now().UTC()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, f)
}

// FeedbackSummary aggregates the log for the summary endpoint.
type FeedbackSummary struct {
	Total       int            `json:"total"`
	ByEvent     map[string]int `json:"byEvent"`
	BySentiment map[string]int `json:"bySentiment"`
}

// Summary returns aggregate counts over the whole log.
func (l *FeedbackLog) Summary() FeedbackSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := FeedbackSummary{
		Total:       len(l.records),
		ByEvent:     make(map[string]int),
		BySentiment: make(map[string]int),
	}
	for _, f := range l.records {
		s.ByEvent[f.Event]++
		if f.Sentiment != "" {
			s.BySentiment[f.Sentiment]++
		}
	}
	return s
}
