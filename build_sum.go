package fwgen

// BuildSum summarizes a generated build graph. It is written as JSON when
// Config.SumFile is set, for scripts that need the names of the outputs.
type BuildSum struct {
	Target    string
	Toolchain string `json:",omitempty"`
	Version   string
	Dirty     bool `json:",omitempty"`

	Binary  string
	Images  []string `json:",omitempty"`
	Objects int
}

func newBuildSum(
	s *Setup, v *Version, tree TreeState, g *Graph,
) *BuildSum {
	sum := &BuildSum{
		Target:    s.Target.Name,
		Toolchain: s.Toolchain.Prefix,
		Version:   v.Value,
		Dirty:     tree.IsDirty(),
		Binary:    g.Binary,
		Objects:   len(g.Objects),
	}
	for _, e := range g.Edges {
		if e.Rule == ruleBin || e.Rule == ruleHex {
			sum.Images = append(sum.Images, e.Outs...)
		}
	}
	return sum
}
