package fwgen

import (
	"log"

	"shanhu.io/misc/jsonx"
	"shanhu.io/misc/osutil"
	"shanhu.io/text/lexing"
)

// CatalogFile is the default name of the optional target catalog file.
const CatalogFile = "TARGETS.fwgen"

const catalogTarget = "target"

// CatalogTarget is a target entry in a catalog file. Catalog targets have
// no flags of their own.
type CatalogTarget struct {
	Name string
	Desc string `json:",omitempty"`
	OS   string `json:",omitempty"`

	Sources []string
	CFlags  []string `json:",omitempty"`
	LDFlags []string `json:",omitempty"`

	CrossToolchain string `json:",omitempty"`
	BinExtension   string `json:",omitempty"`
	GenerateBin    bool   `json:",omitempty"`
	GenerateHex    bool   `json:",omitempty"`
}

func (c *CatalogTarget) targetType() *TargetType {
	return &TargetType{
		Name: c.Name,
		Desc: c.Desc,
		OS:   c.OS,
		Static: &Target{
			Name:           c.Name,
			Sources:        c.Sources,
			CFlags:         c.CFlags,
			LDFlags:        c.LDFlags,
			CrossToolchain: c.CrossToolchain,
			BinExtension:   c.BinExtension,
			GenerateBin:    c.GenerateBin,
			GenerateHex:    c.GenerateHex,
		},
	}
}

func makeCatalogEntry(t string) interface{} {
	if t == catalogTarget {
		return new(CatalogTarget)
	}
	return nil
}

// LoadCatalog reads the target catalog file f and registers its targets
// into r. A missing file is not an error.
func LoadCatalog(r *Registry, f string) []*lexing.Error {
	ok, err := osutil.IsRegular(f)
	if err != nil {
		return lexing.SingleErr(err)
	}
	if !ok {
		return nil
	}

	log.Printf("load targets from %s", f)
	entries, errs := jsonx.ReadSeriesFile(f, makeCatalogEntry)
	if errs != nil {
		return errs
	}

	errList := lexing.NewErrorList()
	for _, entry := range entries {
		c, ok := entry.V.(*CatalogTarget)
		if !ok {
			errList.Errorf(entry.Pos, "unknown type: %q", entry.Type)
			continue
		}
		if c.Name == "" {
			errList.Errorf(entry.Pos, "target has no name")
			continue
		}
		t := c.targetType()
		if err := r.register(t, entry.Pos); err != nil {
			errList.Errorf(entry.Pos, "%s", err)
			if p := r.pos[t.Name]; p != nil {
				errList.Errorf(p, "  previously defined here")
			} else {
				errList.Errorf(entry.Pos, "  %q is a built-in target", t.Name)
			}
		}
	}
	return errList.Errs()
}
