package domain

// QuizQuestion is one multiple-choice kidney-health question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer int      `json:"-"`
}

// QuizResult is the outcome of scoring a completed quiz.
type QuizResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

var kidneyQuiz = []QuizQuestion{
	{
		Question:      "How much water do you drink daily?",
		Answers:       []string{"Less than 1 liter", "1-2 liters", "2-3 liters", "More than 3 liters"},
		CorrectAnswer: 2,
	},
	{
		Question:      "How often do you exercise?",
		Answers:       []string{"Never", "1-2 times a week", "3-4 times a week", "5 or more times a week"},
		CorrectAnswer: 2,
	},
	{
		Question:      "Do you smoke?",
		Answers:       []string{"Yes", "No"},
		CorrectAnswer: 1,
	},
}

// KidneyQuiz returns the kidney-health questions.
func KidneyQuiz() []QuizQuestion {
	out := make([]QuizQuestion, len(kidneyQuiz))
	copy(out, kidneyQuiz)
	return out
}

// ScoreQuiz counts how many answers (indexes into each question's Answers)
// match the healthy choice.
func ScoreQuiz(answers []int) (QuizResult, error) {
	if len(answers) != len(kidneyQuiz) {
		return QuizResult{}, invalid("answers", "expected %d answers, got %d", len(kidneyQuiz), len(answers))
	}
	res := QuizResult{Total: len(kidneyQuiz)}
	for i, a := range answers {
		q := kidneyQuiz[i]
		if a < 0 || a >= len(q.Answers) {
			return QuizResult{}, invalid("answers", "answer %d out of range", i+1)
		}
		if a == q.CorrectAnswer {
			res.Score++
		}
	}
	return res, nil
}
