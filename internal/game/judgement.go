package game

// Judgement is the resolved quality of a note. The zero value is Miss, so an
// unjudged note reads as a miss until it is resolved.
type Judgement uint8

const (
	Miss Judgement = iota
	Sad
	Fine
	Good
	Perfect

	// JudgementCount is the number of judgements, not a judgement itself.
	JudgementCount
)

var judgementInfo = [JudgementCount]struct {
	name string
	base int
}{
	Miss:    {"MISS", 0},
	Sad:     {"SAD", 50},
	Fine:    {"FINE", 150},
	Good:    {"COOL", 300},
	Perfect: {"PERFECT", 500},
}

// Judgements lists every judgement from best to worst, the order used when
// classifying a timing error against HitWindows.
var Judgements = [...]Judgement{Perfect, Good, Fine, Sad, Miss}

// Base is the score awarded before the combo bonus.
func (j Judgement) Base() int {
	if j >= JudgementCount {
		return 0
	}
	return judgementInfo[j].base
}

// Hit reports whether the judgement keeps the combo alive.
func (j Judgement) Hit() bool {
	return j != Miss && j < JudgementCount
}

func (j Judgement) String() string {
	if j >= JudgementCount {
		return "UNKNOWN"
	}
	return judgementInfo[j].name
}
