package daterange

// Range is a finalized selection. Both dates empty means cleared.
type Range struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Mode string

const (
	ModeChoosingStart Mode = "start"
	ModeChoosingEnd   Mode = "end"
)

// State is a snapshot of one selector.
type State struct {
	Name      string `json:"name,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Selecting Mode   `json:"selecting"`
	MinDate   string `json:"min_date,omitempty"`
	MaxDate   string `json:"max_date,omitempty"`
	// LastRange is the most recent range handed to the change callback.
	LastRange *Range `json:"last_range,omitempty"`
}
