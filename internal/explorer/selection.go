package explorer

// ViewMode picks which entity layer the explorer shows.
type ViewMode string

const (
	ModeMarkets  ViewMode = "markets"
	ModeVendors  ViewMode = "vendors"
	ModeResearch ViewMode = "research"
)

func (m ViewMode) Valid() bool {
	switch m {
	case ModeMarkets, ModeVendors, ModeResearch:
		return true
	}
	return false
}

type selectionKind int

const (
	selectionNone selectionKind = iota
	selectionMarket
	selectionVendor
)

// Selection is a tagged union: nothing, one market, or one vendor. Making
// the exclusivity structural means a market and a vendor can never be
// selected at the same time.
type Selection struct {
	kind selectionKind
	id   string
}

// NoSelection is the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// MarketSelection selects the market with the given id.
func MarketSelection(id string) Selection {
	return Selection{kind: selectionMarket, id: id}
}

// VendorSelection selects the vendor with the given id.
func VendorSelection(id string) Selection {
	return Selection{kind: selectionVendor, id: id}
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return s.kind == selectionNone
}

// MarketID returns the selected market id, if a market is selected.
func (s Selection) MarketID() (string, bool) {
	if s.kind != selectionMarket {
		return "", false
	}
	return s.id, true
}

// VendorID returns the selected vendor id, if a vendor is selected.
func (s Selection) VendorID() (string, bool) {
	if s.kind != selectionVendor {
		return "", false
	}
	return s.id, true
}
