package chart

import (
	"fmt"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/tooth"
)

// ImplantFinding is the normalized implant planning assessment. Single and
// bridge sites are separate lists; the screens keep them mutually exclusive
// but the format does not enforce it.
type ImplantFinding struct {
	SingleTeeth  []string
	BridgeTeeth  []string
	BoneGrafting bool
	TimingMode   string
}

func normalizeImplant(payload map[string]interface{}) ImplantFinding {
	return ImplantFinding{
		SingleTeeth:  tooth.SortIDs(strList(payload, "singleImplantTeeth")),
		BridgeTeeth:  tooth.SortIDs(strList(payload, "bridgeImplantTeeth")),
		BoneGrafting: boolVal(payload, "boneGraftingPlanned"),
		TimingMode:   str(payload, "timingMode", ""),
	}
}

func summarizeImplant(f ImplantFinding) Summary {
	summary := fmt.Sprintf("Implants: %d single, %d bridge", len(f.SingleTeeth), len(f.BridgeTeeth))

	grafting := "not planned"
	if f.BoneGrafting {
		grafting = "planned"
	}
	timing := titleWords(f.TimingMode)
	if timing == "" {
		timing = "Unknown"
	}

	return Summary{
		Summary: summary,
		Details: []string{
			formatGroup("Single implants", f.SingleTeeth),
			formatGroup("Bridge implants", f.BridgeTeeth),
			"Bone grafting: " + grafting,
			"Timing: " + timing,
		},
	}
}
