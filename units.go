package massbal

type UnitKind int

const (
	UNIT_FEED UnitKind = iota
	UNIT_MIXER
	UNIT_SPLITTER
	UNIT_BINARY_SEP
	UNIT_RXN_SIMPLE
	UNIT_RXN_MULTI
	UNIT_SINK
)

var unitKindNames = [...]string{
	UNIT_FEED:       "feed",
	UNIT_MIXER:      "mixer",
	UNIT_SPLITTER:   "splitter",
	UNIT_BINARY_SEP: "binary-sep",
	UNIT_RXN_SIMPLE: "rxn-simple",
	UNIT_RXN_MULTI:  "rxn-multi",
	UNIT_SINK:       "sink",
}

func (k UnitKind) String() string {
	if k < 0 || int(k) >= len(unitKindNames) {
		return "unknown"
	}
	return unitKindNames[k]
}

// UnitKinds lists every unit kind in declaration order.
func UnitKinds() []UnitKind {
	kinds := make([]UnitKind, len(unitKindNames))
	for i := range kinds {
		kinds[i] = UnitKind(i)
	}
	return kinds
}

// UnitParams is implemented only by the parameter records below, one per
// unit kind.
type UnitParams interface {
	Kind() UnitKind
	isUnitParams()
}

// FeedParams declares a source stream. Fractions are renormalized.
type FeedParams struct {
	Flow      float64
	Fractions []float64
}

type MixerParams struct{}

// SplitterParams holds one split fraction per outlet.
type SplitterParams struct {
	Split []float64
}

// SeparatorParams takes the feed and z_A from the inbound stream. With no
// specification the unit falls back to BypassSeparation.
type SeparatorParams struct {
	Recovery float64

	Distillate  *float64
	DistillateA *float64
	Bottoms     *float64
	BottomsA    *float64
}

type SimpleReactionParams struct {
	Nu         []float64
	Extent     *float64
	Conversion *Conversion
	Outlet     *OutletTarget
}

type MultiReactionParams struct {
	Nu      [][]float64
	Extents []float64
	Specs   []ExtentSpec
}

type SinkParams struct{}

func (FeedParams) Kind() UnitKind           { return UNIT_FEED }
func (MixerParams) Kind() UnitKind          { return UNIT_MIXER }
func (SplitterParams) Kind() UnitKind       { return UNIT_SPLITTER }
func (SeparatorParams) Kind() UnitKind      { return UNIT_BINARY_SEP }
func (SimpleReactionParams) Kind() UnitKind { return UNIT_RXN_SIMPLE }
func (MultiReactionParams) Kind() UnitKind  { return UNIT_RXN_MULTI }
func (SinkParams) Kind() UnitKind           { return UNIT_SINK }

func (FeedParams) isUnitParams()           {}
func (MixerParams) isUnitParams()          {}
func (SplitterParams) isUnitParams()       {}
func (SeparatorParams) isUnitParams()      {}
func (SimpleReactionParams) isUnitParams() {}
func (MultiReactionParams) isUnitParams()  {}
func (SinkParams) isUnitParams()           {}

// EmptyParams returns the zero parameter record of a kind, as a freshly
// placed unit carries.
func EmptyParams(kind UnitKind) UnitParams {
	switch kind {
	case UNIT_FEED:
		return FeedParams{}
	case UNIT_MIXER:
		return MixerParams{}
	case UNIT_SPLITTER:
		return SplitterParams{}
	case UNIT_BINARY_SEP:
		return SeparatorParams{}
	case UNIT_RXN_SIMPLE:
		return SimpleReactionParams{}
	case UNIT_RXN_MULTI:
		return MultiReactionParams{}
	case UNIT_SINK:
		return SinkParams{}
	}
	return nil
}

type Unit struct {
	ID     string
	Params UnitParams

	outlets []Stream // outlets of the last successful run
}

func (u *Unit) Kind() UnitKind {
	return u.Params.Kind()
}

// Outlets returns the streams computed for this unit by the last
// successful run.
func (u *Unit) Outlets() []Stream {
	return u.outlets
}

// Link routes one outlet of From into To.
type Link struct {
	From string
	To   string
}
