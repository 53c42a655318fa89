package repository

// Category mirrors a row of the categories table.
type Category struct {
	ID   int64
	Type string
}

// Question mirrors a row of the questions table.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}

// InsertQuestionParams carries the columns supplied on insert; id is store-assigned.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int32
}
