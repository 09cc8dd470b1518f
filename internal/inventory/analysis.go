package inventory

// Analysis is the classification result for one source file.
type Analysis struct {
	Streams []StreamDescriptor

	HasTrueHDAudio          bool
	HasIncompatibleSubtitle bool

	// Ignored counts stream-bearing entries whose kind was not recognized
	// (attachments, data tracks). They never affect the plan.
	Ignored int
}

// NewAnalysis derives the compatibility flags from streams. The slice is
// owned by the returned Analysis and must not be modified afterward.
func NewAnalysis(streams []StreamDescriptor, ignored int) *Analysis {
	a := &Analysis{Streams: streams, Ignored: ignored}
	for _, s := range streams {
		if s.IsLossless() {
			a.HasTrueHDAudio = true
		}
		if s.Kind == KindSubtitle && !s.IsConvertible() {
			a.HasIncompatibleSubtitle = true
		}
	}
	return a
}

// Count returns the number of streams of kind k.
func (a *Analysis) Count(k Kind) int {
	n := 0
	for _, s := range a.Streams {
		if s.Kind == k {
			n++
		}
	}
	return n
}

// OfKind returns the streams of kind k in ordinal order.
func (a *Analysis) OfKind(k Kind) []StreamDescriptor {
	var out []StreamDescriptor
	for _, s := range a.Streams {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}

// Excluded returns the subtitle streams a conversion plan leaves out.
func (a *Analysis) Excluded() []StreamDescriptor {
	var out []StreamDescriptor
	for _, s := range a.Streams {
		if s.Kind == KindSubtitle && !s.IsConvertible() {
			out = append(out, s)
		}
	}
	return out
}
