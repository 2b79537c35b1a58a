package game

type Difficulty struct {
	Name  string `json:"name,omitempty"`
	Msd   string `json:"msd,omitempty"`
	NKeys uint8  `json:"-"`
}

var NKeyMap = map[string]uint8{
	"dance-single": 4,
	"dance-solo":   6,
	"dance-double": 8,
}
