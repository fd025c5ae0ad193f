package diag

import (
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Bag accumulates diagnostics across a compilation unit (§6.4: "the
// analyzer does not stop at the first error; it keeps analyzing to
// surface as many diagnostics as it safely can").
type Bag struct {
	items []Diagnostic
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag { return &Bag{} }

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Merge appends every diagnostic from other into b, used when combining
// results from independently-run passes over the same unit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// All returns every collected diagnostic, sorted by source position so
// output is deterministic regardless of analysis visit order.
func (b *Bag) All() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pos.Line != out[j].Pos.Line {
			return out[i].Pos.Line < out[j].Pos.Line
		}
		return out[i].Pos.Column < out[j].Pos.Column
	})
	return out
}

// HasErrors reports whether any collected diagnostic is an Error (§6.4:
// "compilation proceeds to the IR builder only if no Error-severity
// diagnostic was recorded").
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics of the given severity.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// ToJSON serializes the bag as a JSON array of diagnostic objects, built
// incrementally with sjson.SetBytes so each field is added without
// hand-rolling escaping.
func (b *Bag) ToJSON() ([]byte, error) {
	doc := []byte("[]")
	var err error
	for i, d := range b.All() {
		prefix := itoaPath(i)
		doc, err = sjson.SetBytes(doc, prefix+".severity", d.Severity.String())
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, prefix+".code", string(d.Code))
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, prefix+".message", d.Message)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, prefix+".line", d.Pos.Line)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetBytes(doc, prefix+".column", d.Pos.Column)
		if err != nil {
			return nil, err
		}
		if d.File != "" {
			doc, err = sjson.SetBytes(doc, prefix+".file", d.File)
			if err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// CodesFromJSON extracts just the "code" field of every entry in a
// previously-exported diagnostics document, used by tooling that wants a
// quick summary without re-parsing the full structure.
func CodesFromJSON(doc []byte) []string {
	result := gjson.GetBytes(doc, "#.code")
	codes := make([]string, 0, len(result.Array()))
	for _, r := range result.Array() {
		codes = append(codes, r.String())
	}
	return codes
}

func itoaPath(i int) string {
	// sjson paths index arrays with plain decimal, e.g. "0.severity".
	digits := []byte{}
	if i == 0 {
		return "0"
	}
	n := i
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
