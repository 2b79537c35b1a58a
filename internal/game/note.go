package game

// Input is a lane press at a moment of song time, in seconds.
type Input struct {
	Lane int
	Time float64
}

// ChartNote is a chart descriptor, not a live note.
type ChartNote struct {
	Time float64 `json:"t"`
	Lane int     `json:"lane"`
}

// NoteEvent is a chart note with a stable sequence assigned from its position
// in (time, lane) order.
type NoteEvent struct {
	Seq  int
	Lane int
	Time float64
}
