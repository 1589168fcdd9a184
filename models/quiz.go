package models

// QuizQuestion is a single multiple-choice daily challenge.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"` // 4 entries
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}
