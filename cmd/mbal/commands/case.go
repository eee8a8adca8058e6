package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"massbal"
)

// Case is one YAML case file: a component list and exactly one of the
// problem blocks.
type Case struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components"`

	Mixer         *MixerCase         `yaml:"mixer,omitempty"`
	Splitter      *SplitterCase      `yaml:"splitter,omitempty"`
	Separator     *SeparatorCase     `yaml:"separator,omitempty"`
	Reaction      *ReactionCase      `yaml:"reaction,omitempty"`
	MultiReaction *MultiReactionCase `yaml:"multi_reaction,omitempty"`
	Flowsheet     *FlowsheetCase     `yaml:"flowsheet,omitempty"`
}

type FeedCase struct {
	Flow      float64   `yaml:"flow"`
	Fractions []float64 `yaml:"fractions"`
}

type MixerCase struct {
	Feeds []FeedCase `yaml:"feeds"`
}

type SplitterCase struct {
	Feed  FeedCase  `yaml:"feed"`
	Split []float64 `yaml:"split"`
}

// SeparatorSpec is shared by the standalone separator and flowsheet units.
type SeparatorSpec struct {
	Recovery float64  `yaml:"recovery"`
	D        *float64 `yaml:"d,omitempty"`
	XD       *float64 `yaml:"x_d,omitempty"`
	B        *float64 `yaml:"b,omitempty"`
	XB       *float64 `yaml:"x_b,omitempty"`
}

type SeparatorCase struct {
	Feed          float64 `yaml:"feed"`
	FeedA         float64 `yaml:"z_a"`
	SeparatorSpec `yaml:",inline"`
}

type ConversionCase struct {
	Key   string  `yaml:"key"`
	Value float64 `yaml:"value"`
}

type OutletCase struct {
	Component string  `yaml:"component"`
	Flow      float64 `yaml:"flow"`
}

// ReactionSpec is shared by the standalone reaction and flowsheet units.
type ReactionSpec struct {
	Nu         []float64       `yaml:"nu,omitempty"`
	Extent     *float64        `yaml:"extent,omitempty"`
	Conversion *ConversionCase `yaml:"conversion,omitempty"`
	Outlet     *OutletCase     `yaml:"outlet,omitempty"`
}

type AtomsCase struct {
	Elements []string    `yaml:"elements"`
	Alpha    [][]float64 `yaml:"alpha"`
}

type ReactionCase struct {
	Inlet        []float64  `yaml:"inlet"`
	Atoms        *AtomsCase `yaml:"atoms,omitempty"`
	ReactionSpec `yaml:",inline"`
}

// SpecCase is one extent equation. Reaction is 1-based and only read for
// conversion specs.
type SpecCase struct {
	Kind      string  `yaml:"kind"`
	Component string  `yaml:"component"`
	Reaction  int     `yaml:"reaction,omitempty"`
	Value     float64 `yaml:"value"`
}

type MultiReactionSpec struct {
	Reactions [][]float64 `yaml:"reactions,omitempty"`
	Extents   []float64   `yaml:"extents,omitempty"`
	Specs     []SpecCase  `yaml:"specs,omitempty"`
}

type MultiReactionCase struct {
	Inlet             []float64 `yaml:"inlet"`
	MultiReactionSpec `yaml:",inline"`
}

type UnitCase struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	Flow      float64   `yaml:"flow,omitempty"`
	Fractions []float64 `yaml:"fractions,omitempty"`
	Split     []float64 `yaml:"split,omitempty"`

	SeparatorSpec     `yaml:",inline"`
	ReactionSpec      `yaml:",inline"`
	MultiReactionSpec `yaml:",inline"`
}

type LinkCase struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type FlowsheetCase struct {
	Units []UnitCase `yaml:"units"`
	Links []LinkCase `yaml:"links"`
}

// LoadCase reads and decodes a case file. Unknown keys are rejected.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := ParseCase(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

func ParseCase(data []byte) (*Case, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Case
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode case: %w", err)
	}

	blocks := 0
	for _, set := range []bool{c.Mixer != nil, c.Splitter != nil, c.Separator != nil, c.Reaction != nil, c.MultiReaction != nil, c.Flowsheet != nil} {
		if set {
			blocks++
		}
	}
	if blocks != 1 {
		return nil, fmt.Errorf("case must hold exactly one of mixer, splitter, separator, reaction, multi_reaction, flowsheet (found %d)", blocks)
	}
	return &c, nil
}

// component resolves a component name to its index.
func (c *Case) component(name string) (int, error) {
	for i, n := range c.Components {
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: unknown component %q", massbal.ErrInvalidInput, name)
}

func parseUnitKind(name string) (massbal.UnitKind, error) {
	for _, kind := range massbal.UnitKinds() {
		if kind.String() == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown unit type %q", massbal.ErrInvalidInput, name)
}

func parseSpecKind(name string) (massbal.SpecKind, error) {
	for _, kind := range []massbal.SpecKind{massbal.SPEC_OUTLET, massbal.SPEC_CONVERSION} {
		if kind.String() == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown spec kind %q (want nout or conv)", massbal.ErrInvalidInput, name)
}

func (c *Case) reactionParams(r ReactionSpec) (massbal.SimpleReactionParams, error) {
	p := massbal.SimpleReactionParams{Nu: r.Nu, Extent: r.Extent}
	if r.Conversion != nil {
		key, err := c.component(r.Conversion.Key)
		if err != nil {
			return p, err
		}
		p.Conversion = &massbal.Conversion{Key: key, Value: r.Conversion.Value}
	}
	if r.Outlet != nil {
		j, err := c.component(r.Outlet.Component)
		if err != nil {
			return p, err
		}
		p.Outlet = &massbal.OutletTarget{Component: j, Flow: r.Outlet.Flow}
	}
	return p, nil
}

func (c *Case) multiReactionParams(r MultiReactionSpec) (massbal.MultiReactionParams, error) {
	p := massbal.MultiReactionParams{Nu: r.Reactions, Extents: r.Extents}
	for i, s := range r.Specs {
		kind, err := parseSpecKind(s.Kind)
		if err != nil {
			return p, fmt.Errorf("spec %d: %w", i+1, err)
		}
		j, err := c.component(s.Component)
		if err != nil {
			return p, fmt.Errorf("spec %d: %w", i+1, err)
		}
		p.Specs = append(p.Specs, massbal.ExtentSpec{Kind: kind, Component: j, Reaction: s.Reaction - 1, Value: s.Value})
	}
	return p, nil
}

// unitParams maps a flowsheet unit entry to its parameter record.
func (c *Case) unitParams(u UnitCase) (massbal.UnitParams, error) {
	kind, err := parseUnitKind(u.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case massbal.UNIT_FEED:
		return massbal.FeedParams{Flow: u.Flow, Fractions: u.Fractions}, nil
	case massbal.UNIT_SPLITTER:
		return massbal.SplitterParams{Split: u.Split}, nil
	case massbal.UNIT_BINARY_SEP:
		s := u.SeparatorSpec
		return massbal.SeparatorParams{Recovery: s.Recovery, Distillate: s.D, DistillateA: s.XD, Bottoms: s.B, BottomsA: s.XB}, nil
	case massbal.UNIT_RXN_SIMPLE:
		return c.reactionParams(u.ReactionSpec)
	case massbal.UNIT_RXN_MULTI:
		return c.multiReactionParams(u.MultiReactionSpec)
	}
	return massbal.EmptyParams(kind), nil
}

// BuildFlowsheet places the units and links of a flowsheet case.
func (c *Case) BuildFlowsheet(config *massbal.Configuration) (*massbal.Flowsheet, error) {
	if c.Flowsheet == nil {
		return nil, fmt.Errorf("%w: case has no flowsheet", massbal.ErrInvalidInput)
	}

	fs := massbal.NewFlowsheet(c.Components, config)
	for _, u := range c.Flowsheet.Units {
		params, err := c.unitParams(u)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", u.ID, err)
		}
		if _, err := fs.AddUnit(u.ID, params); err != nil {
			return nil, err
		}
	}
	for _, l := range c.Flowsheet.Links {
		if err := fs.AddLink(l.From, l.To); err != nil {
			return nil, err
		}
	}
	return fs, nil
}
