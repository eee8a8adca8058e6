package commands

import (
	"fmt"
	"strings"

	"massbal"
)

// Outcome is the rendered result of one solved case.
type Outcome struct {
	Path     string
	Name     string
	Body     string
	Warnings []string
	Err      error
}

// Solve runs the problem block of the case. Solver failures are returned as
// errors; the body holds whatever was rendered before the failure.
func (c *Case) Solve(config *massbal.Configuration) (*Outcome, error) {
	out := &Outcome{Name: c.Name}
	var sb strings.Builder
	var err error

	switch {
	case c.Mixer != nil:
		err = c.solveMixer(&sb, out)
	case c.Splitter != nil:
		err = c.solveSplitter(&sb, out)
	case c.Separator != nil:
		err = c.solveSeparator(&sb, out)
	case c.Reaction != nil:
		err = c.solveReaction(&sb, out)
	case c.MultiReaction != nil:
		err = c.solveMultiReaction(&sb, out, config)
	case c.Flowsheet != nil:
		err = c.solveFlowsheet(&sb, out, config)
	default:
		err = fmt.Errorf("%w: empty case", massbal.ErrInsufficientSpecification)
	}

	out.Body = sb.String()
	return out, err
}

func (c *Case) solveMixer(sb *strings.Builder, out *Outcome) error {
	feeds := make([]massbal.Feed, len(c.Mixer.Feeds))
	for i, f := range c.Mixer.Feeds {
		feeds[i] = massbal.Feed{Flow: f.Flow, Fractions: f.Fractions}
	}

	res, err := massbal.Mix(massbal.MixerInput{Components: c.Components, Feeds: feeds})
	if err != nil {
		return err
	}
	out.Warnings = res.Warnings
	sb.WriteString(massbal.FormatStream("Product", res.Product))
	return nil
}

func (c *Case) solveSplitter(sb *strings.Builder, out *Outcome) error {
	res, err := massbal.Split(massbal.SplitterInput{
		Components: c.Components,
		Feed:       massbal.Feed{Flow: c.Splitter.Feed.Flow, Fractions: c.Splitter.Feed.Fractions},
		Split:      c.Splitter.Split,
	})
	if err != nil {
		return err
	}
	out.Warnings = res.Warnings
	for i, s := range res.Outlets {
		sb.WriteString(massbal.FormatStream(fmt.Sprintf("Outlet %d (phi = %.4f)", i+1, res.Split[i]), s))
	}
	return nil
}

func (c *Case) solveSeparator(sb *strings.Builder, out *Outcome) error {
	s := c.Separator
	res, err := massbal.Separate(massbal.SeparatorInput{
		Components:  c.Components,
		Feed:        s.Feed,
		FeedA:       s.FeedA,
		Recovery:    s.Recovery,
		Distillate:  s.D,
		DistillateA: s.XD,
		Bottoms:     s.B,
		BottomsA:    s.XB,
	})
	if err != nil {
		return err
	}
	out.Warnings = res.Warnings
	sb.WriteString(massbal.FormatStream("Distillate", res.Distillate))
	sb.WriteString(massbal.FormatStream("Bottoms", res.Bottoms))
	return nil
}

func (c *Case) solveReaction(sb *strings.Builder, out *Outcome) error {
	p, err := c.reactionParams(c.Reaction.ReactionSpec)
	if err != nil {
		return err
	}
	in := massbal.ReactionInput{
		Components: c.Components,
		Inlet:      c.Reaction.Inlet,
		Nu:         p.Nu,
		Extent:     p.Extent,
		Conversion: p.Conversion,
		Outlet:     p.Outlet,
	}
	if a := c.Reaction.Atoms; a != nil {
		in.Atoms = &massbal.AtomMatrix{Elements: a.Elements, Alpha: a.Alpha}
	}

	res, err := massbal.React(in)
	if err != nil {
		return err
	}
	out.Warnings = res.Warnings

	fmt.Fprintf(sb, "Extent = %.6f (%s)\n", res.Extent, res.Mode)
	sb.WriteString(massbal.FormatStream("Outlet", res.Stream(c.Components)))
	if b := res.AtomBalance; b != nil {
		fmt.Fprintf(sb, "Atom balance\n")
		for e, name := range b.Elements {
			fmt.Fprintf(sb, "  %-10s in = %.6f   out = %.6f\n", name, b.In[e], b.Out[e])
		}
		if !b.Conserved {
			out.Warnings = append(out.Warnings, "atoms are not conserved, check the stoichiometry")
		}
	}
	return nil
}

func (c *Case) solveMultiReaction(sb *strings.Builder, out *Outcome, config *massbal.Configuration) error {
	p, err := c.multiReactionParams(c.MultiReaction.MultiReactionSpec)
	if err != nil {
		return err
	}

	res, err := massbal.ReactMulti(massbal.MultiReactionInput{
		Components: c.Components,
		Inlet:      c.MultiReaction.Inlet,
		Nu:         p.Nu,
		Extents:    p.Extents,
		Specs:      p.Specs,
		Config:     config,
	})
	if err != nil {
		return err
	}
	out.Warnings = res.Warnings

	fmt.Fprintf(sb, "Rank = %d of %d reactions\n", res.Rank.Rank, res.Rank.Rows)
	for k, xi := range res.Extents {
		fmt.Fprintf(sb, "  xi[%d] = %.6f\n", k+1, xi)
	}
	sb.WriteString(massbal.FormatStream("Outlet", res.Stream(c.Components)))
	return nil
}

func (c *Case) solveFlowsheet(sb *strings.Builder, out *Outcome, config *massbal.Configuration) error {
	fs, err := c.BuildFlowsheet(config)
	if err != nil {
		return err
	}

	report, err := fs.Run()
	if err != nil {
		return err
	}
	out.Warnings = report.Warnings

	fmt.Fprintf(sb, "Order: %s\n", strings.Join(report.Order, " -> "))
	for _, u := range report.Units {
		fmt.Fprintf(sb, "  %-12s %-11s %s\n", u.ID, u.Kind, u.Badge())
	}
	for _, s := range report.Sinks {
		title := "Sink " + s.ID
		if !s.Connected {
			title += " (not connected)"
		}
		sb.WriteString(massbal.FormatStream(title, s.Stream))
		if !s.Stream.Valid() {
			out.Warnings = append(out.Warnings, fmt.Sprintf("sink %s: composition does not sum to 1", s.ID))
		}
	}
	return nil
}
