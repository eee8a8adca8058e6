package massbal

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Flowsheet is a directed graph of units over one component set. It is
// mutated only between runs.
type Flowsheet struct {
	Config Configuration

	components []string
	units      []*Unit
	byID       map[string]*Unit
	links      []Link
}

type UnitResult struct {
	ID       string
	Kind     UnitKind
	Outlets  []Stream
	Warnings []string
}

// Badge summarizes the first outlet of a unit.
func (r UnitResult) Badge() string {
	if len(r.Outlets) == 0 {
		return "-"
	}
	return fmt.Sprintf("F=%.2f", r.Outlets[0].Flow)
}

type SinkReport struct {
	ID        string
	Connected bool
	Stream    Stream
}

type RunReport struct {
	Components []string
	Order      []string
	Units      []UnitResult // in evaluation order
	Sinks      []SinkReport // in unit creation order
	Warnings   []string
}

func (r *RunReport) Sink(id string) (SinkReport, bool) {
	for _, s := range r.Sinks {
		if s.ID == id {
			return s, true
		}
	}
	return SinkReport{}, false
}

func (r *RunReport) Unit(id string) (UnitResult, bool) {
	for _, u := range r.Units {
		if u.ID == id {
			return u, true
		}
	}
	return UnitResult{}, false
}

func NewFlowsheet(components []string, config *Configuration) *Flowsheet {
	fs := &Flowsheet{
		components: slices.Clone(components),
		byID:       make(map[string]*Unit),
	}
	if config != nil {
		fs.Config = *config
	}
	return fs
}

func (fs *Flowsheet) logger() *logrus.Logger {
	if fs.Config.Logger != nil {
		return fs.Config.Logger
	}
	return logrus.StandardLogger()
}

func (fs *Flowsheet) Components() []string {
	return slices.Clone(fs.components)
}

// AddUnit places a unit. An empty id is replaced by u1, u2, ...
func (fs *Flowsheet) AddUnit(id string, params UnitParams) (*Unit, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: unit %q has no parameters", ErrInvalidInput, id)
	}
	if id == "" {
		for n := len(fs.units) + 1; ; n++ {
			id = fmt.Sprintf("u%d", n)
			if _, taken := fs.byID[id]; !taken {
				break
			}
		}
	}
	if _, taken := fs.byID[id]; taken {
		return nil, fmt.Errorf("%w: duplicate unit id %q", ErrInvalidInput, id)
	}

	u := &Unit{ID: id, Params: params}
	fs.units = append(fs.units, u)
	fs.byID[id] = u
	return u, nil
}

func (fs *Flowsheet) AddLink(from, to string) error {
	if _, ok := fs.byID[from]; !ok {
		return fmt.Errorf("%w: unknown source unit %q", ErrInvalidInput, from)
	}
	if _, ok := fs.byID[to]; !ok {
		return fmt.Errorf("%w: unknown target unit %q", ErrInvalidInput, to)
	}
	fs.links = append(fs.links, Link{From: from, To: to})
	return nil
}

// UpdateParams replaces the parameters of a unit. The kind cannot change.
func (fs *Flowsheet) UpdateParams(id string, params UnitParams) error {
	u, ok := fs.byID[id]
	if !ok {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidInput, id)
	}
	if params == nil || params.Kind() != u.Kind() {
		return fmt.Errorf("%w: unit %q is a %s", ErrInvalidInput, id, u.Kind())
	}
	u.Params = params
	return nil
}

func (fs *Flowsheet) Unit(id string) (*Unit, bool) {
	u, ok := fs.byID[id]
	return u, ok
}

func (fs *Flowsheet) Units() []*Unit {
	return slices.Clone(fs.units)
}

func (fs *Flowsheet) Links() []Link {
	return slices.Clone(fs.links)
}

// Reset removes every unit and link.
func (fs *Flowsheet) Reset() {
	fs.units = nil
	fs.links = nil
	fs.byID = make(map[string]*Unit)
}

// Order returns the unit ids in Kahn topological order. Units that become
// ready at the same time keep creation order.
func (fs *Flowsheet) Order() ([]string, error) {
	indeg := make(map[string]int, len(fs.units))
	outAdj := make(map[string][]string, len(fs.units))
	for _, l := range fs.links {
		outAdj[l.From] = append(outAdj[l.From], l.To)
		indeg[l.To]++
	}

	queue := make([]string, 0, len(fs.units))
	for _, u := range fs.units {
		if indeg[u.ID] == 0 {
			queue = append(queue, u.ID)
		}
	}

	order := make([]string, 0, len(fs.units))
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)

		for _, w := range outAdj[v] {
			indeg[w]--
			if indeg[w] == 0 {
				queue = append(queue, w)
			}
		}
	}

	if len(order) != len(fs.units) {
		var stuck []string
		for _, u := range fs.units {
			if !slices.Contains(order, u.ID) {
				stuck = append(stuck, u.ID)
			}
		}
		return nil, fmt.Errorf("%w (units %v)", ErrGraphCycle, stuck)
	}
	return order, nil
}

// Run evaluates every unit in topological order and reports the sinks.
// Outlets cached by a previous run are dropped first; nothing is cached
// unless the whole run succeeds.
func (fs *Flowsheet) Run() (*RunReport, error) {
	for _, u := range fs.units {
		u.outlets = nil
	}

	order, err := fs.Order()
	if err != nil {
		return nil, err
	}

	log := fs.logger()
	results := make(map[string][]Stream, len(fs.units))
	report := &RunReport{Components: fs.Components(), Order: order}

	for _, id := range order {
		u := fs.byID[id]
		inbound := fs.inboundStreams(id, results)

		outs, warnings, err := fs.evaluate(u, inbound)
		if err != nil {
			log.WithFields(logrus.Fields{"unit": id, "kind": u.Kind().String()}).WithError(err).Warn("unit evaluation failed")
			return nil, &UnitError{ID: id, Kind: u.Kind(), Err: err}
		}

		results[id] = outs
		report.Units = append(report.Units, UnitResult{ID: id, Kind: u.Kind(), Outlets: outs, Warnings: warnings})
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", id, w))
		}

		log.WithFields(logrus.Fields{
			"unit":    id,
			"kind":    u.Kind().String(),
			"inbound": len(inbound),
			"outlets": len(outs),
		}).Debug("unit evaluated")
	}

	for _, u := range fs.units {
		u.outlets = results[u.ID]
		if u.Kind() != UNIT_SINK {
			continue
		}

		sink := SinkReport{ID: u.ID, Stream: ZeroStream(len(fs.components), report.Components)}
		if ins := fs.inboundStreams(u.ID, results); len(ins) > 0 {
			sink.Stream = ins[0]
		}
		sink.Connected = fs.hasInbound(u.ID)
		report.Sinks = append(report.Sinks, sink)
	}

	return report, nil
}

// inboundStreams collects one stream per inbound link of id. The k-th
// outbound link of a source carries the source's outlet k, or its first
// outlet when it has fewer.
func (fs *Flowsheet) inboundStreams(id string, results map[string][]Stream) []Stream {
	var streams []Stream
	port := make(map[string]int)

	for _, l := range fs.links {
		k := port[l.From]
		port[l.From]++
		if l.To != id {
			continue
		}

		outs := results[l.From]
		if len(outs) == 0 {
			continue
		}
		if k >= len(outs) {
			k = 0
		}
		streams = append(streams, outs[k])
	}

	return streams
}

func (fs *Flowsheet) hasInbound(id string) bool {
	return slices.ContainsFunc(fs.links, func(l Link) bool { return l.To == id })
}

func (fs *Flowsheet) firstInbound(inbound []Stream) Stream {
	if len(inbound) > 0 {
		return inbound[0]
	}
	return ZeroStream(len(fs.components), fs.components)
}

func (fs *Flowsheet) evaluate(u *Unit, inbound []Stream) ([]Stream, []string, error) {
	comps := fs.components
	width := len(comps)

	switch p := u.Params.(type) {
	case FeedParams:
		fractions := p.Fractions
		if fractions == nil {
			fractions = zeros(width)
		}
		x, warning, err := normalizeFeed("feed", Feed{Flow: p.Flow, Fractions: fractions}, width)
		if err != nil {
			return nil, nil, err
		}
		return []Stream{{Flow: p.Flow, Fractions: x, Components: comps}}, nonEmpty(warning), nil

	case MixerParams:
		var feeds []Feed
		for _, s := range inbound {
			if !s.empty() {
				feeds = append(feeds, Feed{Flow: s.Flow, Fractions: s.Fractions})
			}
		}
		if len(feeds) == 0 {
			return []Stream{ZeroStream(width, comps)}, nil, nil
		}
		res, err := Mix(MixerInput{Components: comps, Feeds: feeds})
		if err != nil {
			return nil, nil, err
		}
		return []Stream{res.Product}, res.Warnings, nil

	case SplitterParams:
		feed := fs.firstInbound(inbound)
		if feed.empty() {
			phi, warning, err := splitFractions(p.Split)
			if err != nil {
				return nil, nil, err
			}
			outs := make([]Stream, len(phi))
			for i := range outs {
				outs[i] = ZeroStream(width, comps)
			}
			return outs, nonEmpty(warning), nil
		}
		res, err := Split(SplitterInput{
			Components: comps,
			Feed:       Feed{Flow: feed.Flow, Fractions: feed.Fractions},
			Split:      p.Split,
		})
		if err != nil {
			return nil, nil, err
		}
		return res.Outlets, res.Warnings, nil

	case SeparatorParams:
		if width != 2 {
			return nil, nil, fmt.Errorf("%w: binary separator needs exactly 2 components, flowsheet has %d", ErrInvalidInput, width)
		}
		feed := fs.firstInbound(inbound)
		in := SeparatorInput{
			Components:  comps,
			Feed:        feed.Flow,
			FeedA:       feed.Fractions[0],
			Recovery:    p.Recovery,
			Distillate:  p.Distillate,
			DistillateA: p.DistillateA,
			Bottoms:     p.Bottoms,
			BottomsA:    p.BottomsA,
		}

		var res *SeparatorResult
		if in.specCount() == 0 {
			res = BypassSeparation(in.Feed, in.FeedA, in.Recovery, comps)
		} else {
			var err error
			if res, err = Separate(in); err != nil {
				return nil, nil, err
			}
		}
		return []Stream{res.Distillate, res.Bottoms}, res.Warnings, nil

	case SimpleReactionParams:
		feed := fs.firstInbound(inbound)
		res, err := React(ReactionInput{
			Components: comps,
			Inlet:      feed.ComponentFlows(),
			Nu:         p.Nu,
			Extent:     p.Extent,
			Conversion: p.Conversion,
			Outlet:     p.Outlet,
		})
		if err != nil {
			return nil, nil, err
		}
		return []Stream{res.Stream(comps)}, res.Warnings, nil

	case MultiReactionParams:
		feed := fs.firstInbound(inbound)
		res, err := ReactMulti(MultiReactionInput{
			Components: comps,
			Inlet:      feed.ComponentFlows(),
			Nu:         p.Nu,
			Extents:    p.Extents,
			Specs:      p.Specs,
			Config:     &fs.Config,
		})
		if err != nil {
			return nil, nil, err
		}
		return []Stream{res.Stream(comps)}, res.Warnings, nil

	case SinkParams:
		return nil, nil, nil
	}

	return nil, nil, fmt.Errorf("%w: unsupported unit parameters %T", ErrInvalidInput, u.Params)
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
