package chart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/tooth"
)

// Treatment types recorded by the treatment screens.
const (
	TreatmentHygiene      = "hygiene"
	TreatmentExtraction   = "extraction"
	TreatmentFilling      = "filling"
	TreatmentDenture      = "denture"
	TreatmentImplant      = "implant"
	TreatmentImplantCrown = "implant-crown"
)

// Treatment is the flat slice of a treatment record the detail formatter
// needs. BillingCodes is the persisted encoded JSON array; Notes is free
// text except for hygiene treatments, where it is itself encoded JSON.
type Treatment struct {
	Type         string
	Tooth        string
	Surface      string
	Units        int
	UnitValue    float64
	BillingCodes string
	Notes        string
}

// hygieneNotes is the encoded payload stored in a hygiene treatment's notes
// field.
type hygieneNotes struct {
	Scaling    bool   `json:"scaling"`
	Polishing  bool   `json:"polishing"`
	Fluoride   bool   `json:"fluoride"`
	Medication string `json:"medication"`
	Notes      string `json:"notes"`
}

// ParseTreatmentDetails renders the detail lines for one treatment record.
// Like assessment parsing it is total: double-encoded fields that fail to
// decode degrade to the raw units line.
func ParseTreatmentDetails(t Treatment) []string {
	var details []string

	switch t.Type {
	case TreatmentHygiene:
		details = hygieneDetails(t)
	case TreatmentExtraction:
		details = toothLine(t)
		if t.Notes != "" {
			details = append(details, "Notes: "+t.Notes)
		}
	case TreatmentFilling:
		details = toothLine(t)
		if t.Surface != "" {
			details = append(details, "Surfaces: "+expandSurfaces(t.Surface))
		}
		if t.Notes != "" {
			details = append(details, "Notes: "+t.Notes)
		}
	case TreatmentDenture, TreatmentImplant, TreatmentImplantCrown:
		details = toothLine(t)
		if t.Units > 0 {
			details = append(details, fmt.Sprintf("Units: %d", t.Units))
		}
		if t.Notes != "" {
			details = append(details, "Notes: "+t.Notes)
		}
	default:
		if t.Units > 0 {
			details = append(details, fmt.Sprintf("Units: %d", t.Units))
		}
		if t.Notes != "" {
			details = append(details, "Notes: "+t.Notes)
		}
	}

	if codes := DecodeBillingCodes(t.BillingCodes); len(codes) > 0 {
		details = append(details, "Billing codes: "+strings.Join(codes, ", "))
	}
	return details
}

func hygieneDetails(t Treatment) []string {
	var n hygieneNotes
	if t.Notes == "" || json.Unmarshal([]byte(t.Notes), &n) != nil {
		// Pre-structured records stored plain notes; report raw units.
		return []string{fmt.Sprintf("Units: %d", t.Units)}
	}

	var services []string
	if n.Scaling {
		services = append(services, "scaling")
	}
	if n.Polishing {
		services = append(services, "polishing")
	}
	if n.Fluoride {
		services = append(services, "fluoride")
	}

	details := []string{formatServiceGroup("Services", services)}
	if n.Medication != "" {
		details = append(details, "Medication: "+n.Medication)
	}
	if n.Notes != "" {
		details = append(details, "Notes: "+n.Notes)
	}
	return details
}

func toothLine(t Treatment) []string {
	if t.Tooth == "" {
		return nil
	}
	return []string{"Tooth: " + t.Tooth}
}

// expandSurfaces turns a compact surface string ("MO" or "M,O") into
// labeled form ("Mesial, Occlusal").
func expandSurfaces(s string) string {
	codes := strings.Split(s, ",")
	if len(codes) == 1 && len(s) > 1 && !strings.Contains(s, ",") {
		codes = strings.Split(s, "")
	}
	labels := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		labels = append(labels, tooth.SurfaceLabel(strings.ToUpper(c)))
	}
	return strings.Join(labels, ", ")
}

// DecodeBillingCodes decodes the persisted billing-code array. Entries may
// be plain strings or objects with a "code" key; anything else is dropped.
// Malformed payloads decode to nil.
func DecodeBillingCodes(raw string) []string {
	if raw == "" {
		return nil
	}
	var entries []interface{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}
	var codes []string
	for _, e := range entries {
		switch v := e.(type) {
		case string:
			if v != "" {
				codes = append(codes, v)
			}
		case map[string]interface{}:
			if c, ok := v["code"].(string); ok && c != "" {
				codes = append(codes, c)
			}
		}
	}
	return codes
}
