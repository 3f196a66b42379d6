// Package generator builds arithmetic practice problems and weighted item picks.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Kind selects the problem family.
type Kind string

const (
	KindRead           Kind = "read"
	KindAddition       Kind = "addition"
	KindSubtraction    Kind = "subtraction"
	KindMultiplication Kind = "multiplication"
	KindDivision       Kind = "division"
	KindSequence       Kind = "sequence"
	KindComparison     Kind = "comparison"
)

// Difficulty selects the number ranges.
type Difficulty string

const (
	Easy Difficulty = "easy"
	Hard Difficulty = "hard"
)

const sequenceTerms = 4

// Kinds lists every problem family in menu order.
func Kinds() []Kind {
	return []Kind{KindRead, KindAddition, KindSubtraction, KindMultiplication, KindDivision, KindSequence, KindComparison}
}

// Title is the menu label of k.
func (k Kind) Title() string {
	switch k {
	case KindRead:
		return "Number Reading"
	case KindSequence:
		return "Number Sequences"
	case KindComparison:
		return "Number Comparison"
	default:
		s := string(k)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown problem kind %q", s)
}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Problem is one question and its integer answer.
type Problem struct {
	Kind       Kind
	Difficulty Difficulty
	Question   string
	Answer     int
}

// Generator produces randomized problems.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// between returns an int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rnd.Intn(hi-lo+1)
}

// pick returns easy or hard depending on d.
func pick(d Difficulty, easy, hard int) int {
	if d == Hard {
		return hard
	}
	return easy
}

// Generate builds one problem of kind k at difficulty d.
func (g *Generator) Generate(k Kind, d Difficulty) Problem {
	p := Problem{Kind: k, Difficulty: d}
	switch k {
	case KindAddition:
		a := g.between(pick(d, 1, 10), pick(d, 10, 100))
		b := g.between(pick(d, 1, 10), pick(d, 10, 100))
		p.Question = fmt.Sprintf("%d + %d = ?", a, b)
		p.Answer = a + b
	case KindSubtraction:
		minuend := g.between(pick(d, 10, 20), pick(d, 20, 100))
		subtrahend := g.between(1, minuend-1)
		p.Question = fmt.Sprintf("%d - %d = ?", minuend, subtrahend)
		p.Answer = minuend - subtrahend
	case KindMultiplication:
		a := g.between(pick(d, 1, 2), pick(d, 10, 12))
		b := g.between(pick(d, 1, 2), pick(d, 10, 12))
		p.Question = fmt.Sprintf("%d × %d = ?", a, b)
		p.Answer = a * b
	case KindDivision:
		divisor := g.between(pick(d, 2, 3), pick(d, 10, 12))
		quotient := g.between(pick(d, 1, 2), pick(d, 10, 12))
		p.Question = fmt.Sprintf("%d ÷ %d = ?", divisor*quotient, divisor)
		p.Answer = quotient
	case KindSequence:
		start := g.between(pick(d, 1, 5), pick(d, 10, 20))
		step := g.between(pick(d, 1, 2), pick(d, 3, 5))
		terms := make([]string, sequenceTerms)
		for i := range terms {
			terms[i] = fmt.Sprint(start + step*i)
		}
		p.Question = fmt.Sprintf("What comes next? %s, ?", strings.Join(terms, ", "))
		p.Answer = start + step*sequenceTerms
	case KindComparison:
		a := g.between(pick(d, 1, 10), pick(d, 50, 100))
		b := g.between(pick(d, 1, 10), pick(d, 50, 100))
		p.Question = fmt.Sprintf("Which number is bigger? %d or %d?", a, b)
		p.Answer = max(a, b)
	default:
		p.Kind = KindRead
		n := g.between(pick(d, 1, 100), pick(d, 100, 1000))
		p.Question = fmt.Sprintf("What number is this? %d", n)
		p.Answer = n
	}
	return p
}

// PickWeighted returns an index into items, biased toward entries in weak.
func (g *Generator) PickWeighted(items []string, weak map[string]struct{}, factor float64) int {
	if len(items) == 0 {
		return -1
	}
	weights := make([]float64, len(items))
	total := 0.0
	for i, item := range items {
		w := 1.0
		if _, ok := weak[item]; ok {
			w += factor
		}
		weights[i] = w
		total += w
	}
	r := g.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return i
		}
	}
	return len(items) - 1
}
