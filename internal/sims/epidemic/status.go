package epidemic

import "image/color"

// Status enumerates the health state of a single cell.
type Status uint8

const (
	Susceptible Status = iota
	Infected
	Recovered
	Dead
)

// NumStatuses is the number of distinct Status values.
const NumStatuses = 4

// Statuses lists every status in display order.
var Statuses = [NumStatuses]Status{Susceptible, Infected, Recovered, Dead}

var statusNames = [NumStatuses]string{"susceptible", "infected", "recovered", "dead"}

var statusPalette = [NumStatuses]color.RGBA{
	Susceptible: {R: 0, G: 255, B: 0, A: 255},
	Infected:    {R: 255, G: 0, B: 0, A: 255},
	Recovered:   {R: 0, G: 0, B: 255, A: 255},
	Dead:        {R: 0, G: 0, B: 0, A: 255},
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Color returns the fixed display color for the status.
func (s Status) Color() color.RGBA {
	if int(s) < len(statusPalette) {
		return statusPalette[s]
	}
	return color.RGBA{A: 255}
}
