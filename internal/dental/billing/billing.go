// Package billing centralizes the CDT procedure-code tables used by the
// treatment screens. One shared read-only table replaces the per-screen
// copies the mobile app carried.
package billing

import "encoding/json"

// Code pairs a CDT procedure code with its description.
type Code struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Posterior composite filling codes, keyed by surface count. Four or more
// surfaces bill as D2394.
var fillingBySurfaces = map[int]Code{
	1: {"D2391", "Resin-based composite - one surface, posterior"},
	2: {"D2392", "Resin-based composite - two surfaces, posterior"},
	3: {"D2393", "Resin-based composite - three surfaces, posterior"},
	4: {"D2394", "Resin-based composite - four or more surfaces, posterior"},
}

var byTreatmentType = map[string][]Code{
	"hygiene": {
		{"D1110", "Prophylaxis - adult"},
		{"D4341", "Periodontal scaling and root planing - four or more teeth per quadrant"},
	},
	"extraction": {
		{"D7140", "Extraction, erupted tooth or exposed root"},
	},
	"denture": {
		{"D5110", "Complete denture - maxillary"},
		{"D5120", "Complete denture - mandibular"},
	},
	"implant": {
		{"D6010", "Surgical placement of implant body: endosteal implant"},
	},
	"implant-crown": {
		{"D6065", "Implant supported porcelain/ceramic crown"},
	},
}

// CodesFor derives the billing codes for a treatment. Fillings depend on the
// number of surfaces treated; every other type maps straight off the table.
// Unknown types derive no codes.
func CodesFor(treatmentType string, surfaceCount int) []Code {
	if treatmentType == "filling" {
		if surfaceCount < 1 {
			surfaceCount = 1
		}
		if surfaceCount > 4 {
			surfaceCount = 4
		}
		return []Code{fillingBySurfaces[surfaceCount]}
	}
	codes := byTreatmentType[treatmentType]
	out := make([]Code, len(codes))
	copy(out, codes)
	return out
}

// Encode renders codes in the persisted wire form: a JSON array of code
// strings, matching what historical records store.
func Encode(codes []Code) string {
	strs := make([]string, len(codes))
	for i, c := range codes {
		strs[i] = c.Code
	}
	b, err := json.Marshal(strs)
	if err != nil {
		return "[]"
	}
	return string(b)
}
