package domain

type StrokeMode string

const (
	StrokeDraw  StrokeMode = "draw"
	StrokeErase StrokeMode = "erase"
)

// Stroke is a transient whiteboard segment. It is relayed, never stored;
// the server holds no canvas buffer, so late joiners do not recover it.
type Stroke struct {
	FromX float64    `json:"fromX"`
	FromY float64    `json:"fromY"`
	ToX   float64    `json:"toX"`
	ToY   float64    `json:"toY"`
	Color string     `json:"color"`
	Width float64    `json:"width"`
	Mode  StrokeMode `json:"mode"`
}
