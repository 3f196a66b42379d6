package generator

import (
	"fmt"
	"strconv"
	"strings"
)

// Feedback text.
const (
	msgNoAnswer   = "⚠️ Please enter an answer first!"
	msgCorrect    = "✅ Correct! Great job!"
	msgStreak     = " %d in a row!"
	msgIncorrect  = "❌ Not quite. The correct answer is %d. Try again!"
	streakMention = 3
)

// Tally counts quiz answers.
type Tally struct {
	Correct  int
	Attempts int
	Streak   int
}

// Accuracy is the rounded percentage of correct answers.
func (t Tally) Accuracy() int {
	if t.Attempts == 0 {
		return 0
	}
	return (t.Correct*100 + t.Attempts/2) / t.Attempts
}

// Check grades answer against p, updates the tally and returns feedback.
// A blank answer is not counted. Non-numeric input counts as wrong.
func (t *Tally) Check(p Problem, answer string) (correct bool, feedback string) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false, msgNoAnswer
	}
	t.Attempts++
	n, err := strconv.Atoi(answer)
	if err != nil || n != p.Answer {
		t.Streak = 0
		return false, fmt.Sprintf(msgIncorrect, p.Answer)
	}
	t.Correct++
	t.Streak++
	feedback = msgCorrect
	if t.Streak >= streakMention {
		feedback += fmt.Sprintf(msgStreak, t.Streak)
	}
	return true, feedback
}
