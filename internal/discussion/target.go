package discussion

import (
	"fmt"
)

// TargetType is the closed set of entity kinds a discussion can attach to.
type TargetType string

const (
	TargetRateSubmission TargetType = "rate_submission"
	TargetInsuranceInfo  TargetType = "insurance_info"
	TargetCarrierGeneral TargetType = "carrier_general"
	TargetSafetyConcern  TargetType = "safety_concern"
	TargetCarrierRating  TargetType = "carrier_rating"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetRateSubmission, TargetInsuranceInfo, TargetCarrierGeneral,
		TargetSafetyConcern, TargetCarrierRating:
		return true
	}
	return false
}

// ParseTargetType validates a raw string at the boundary so invalid target
// kinds never get past it.
func ParseTargetType(s string) (TargetType, error) {
	t := TargetType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown target type %q", s)
	}
	return t, nil
}

// Target identifies the entity one discussion hangs off.
type Target struct {
	Type TargetType
	ID   uint
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%d", t.Type, t.ID)
}
