package model

// Activity sheet columns of the pre-aggregated weekly export.
const (
	ColEmployeeName      = "employee_name"
	ColSubmitted         = "submitted"
	ColPagesAdded        = "pages_added"
	ColFinishBonus       = "finish_bonus"
	ColStreakBonus       = "streak_bonus"
	ColWeeklyScore       = "weekly_score"
	ColRank              = "rank"
	ColBooksFinishedWeek = "books_finished_week"
	ColFinishedTotal     = "finished_total"
)

// Activity sheet columns of the raw per-submission export.
const (
	ColTimestamp = "timestamp"
	ColWeek      = "week"
	ColPagesRead = "pages_read"
	ColStatus    = "status"
	ColBookTitle = "book_title"
)

// Roster columns.
const (
	ColActive = "active"
)
