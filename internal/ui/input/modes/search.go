package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"farmdir/internal/ui/input/types"
)

type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}

type DistanceMode struct {
	TextInputMode
}

func NewDistanceMode(ti *textinput.Model) *DistanceMode {
	return &DistanceMode{
		TextInputMode: NewTextInputMode(types.ModeDistance, "distance", "Distance (km): ", ti),
	}
}

type LocationMode struct {
	TextInputMode
}

func NewLocationMode(ti *textinput.Model) *LocationMode {
	return &LocationMode{
		TextInputMode: NewTextInputMode(types.ModeLocation, "location", "Open: ", ti),
	}
}
