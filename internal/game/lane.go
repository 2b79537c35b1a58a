package game

import "strconv"

// Lane names for four key play. Charts with more lanes use plain numbers.
const (
	Up = iota
	Left
	Down
	Right
)

var laneNames = [...]string{Up: "UP", Left: "LEFT", Down: "DOWN", Right: "RIGHT"}

func LaneName(lane, lanes int) string {
	if lanes == len(laneNames) && lane >= 0 && lane < len(laneNames) {
		return laneNames[lane]
	}
	return "LANE " + strconv.Itoa(lane+1)
}
