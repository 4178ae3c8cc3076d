package metrics

// IncrementArticleCreated increments article creation counter
func (m *Metrics) IncrementArticleCreated() {
	m.safeExecute("IncrementArticleCreated", func() {
		m.ArticleCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// SetArticlesTotal sets total articles gauge
func (m *Metrics) SetArticlesTotal(count int64) {
	m.safeExecute("SetArticlesTotal", func() {
		m.ArticlesTotal.Set(float64(count))
	})
}

// SetCommentsTotal sets total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}

// SetPendingCommentsTotal sets the moderation queue gauge
func (m *Metrics) SetPendingCommentsTotal(count int64) {
	m.safeExecute("SetPendingCommentsTotal", func() {
		m.PendingCommentsTotal.Set(float64(count))
	})
}
