package game

import "fmt"

// Lane is one of the four directions of the reticle.
type Lane uint8

const (
	UpLeft Lane = iota
	UpRight
	DownLeft
	DownRight
)

// NLanes is the number of lanes on the reticle
const NLanes = 4

var Lanes = [NLanes]Lane{UpLeft, UpRight, DownLeft, DownRight}

var laneNames = [NLanes]string{"UL", "UR", "DL", "DR"}

func (l Lane) String() string {
	if int(l) < NLanes {
		return laneNames[l]
	}
	return fmt.Sprintf("Lane(%d)", uint8(l))
}

func (l Lane) Valid() bool {
	return int(l) < NLanes
}

// ParseLane maps the short chart name of a lane (UL, UR, DL, DR) to a Lane.
func ParseLane(s string) (Lane, bool) {
	for i, n := range laneNames {
		if n == s {
			return Lane(i), true
		}
	}
	return 0, false
}
