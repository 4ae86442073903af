package model

import (
	"fmt"
)

// AdvisoryType is declared in escalation order.
type AdvisoryType int

const (
	Clear AdvisoryType = iota
	TA

	// Preventive / maintain
	RAMaintain
	RADoNotClimb
	RADoNotDescend

	// Corrective
	RAClimb
	RADescend
	RACrossingClimb
	RACrossingDescend
	RAReduceClimb
	RAReduceDescend

	// Strengthened
	RAIncreaseClimb
	RAIncreaseDescend
)

// AllAdvisoryTypes lists every variant in escalation order.
var AllAdvisoryTypes = []AdvisoryType{
	Clear, TA,
	RAMaintain, RADoNotClimb, RADoNotDescend,
	RAClimb, RADescend, RACrossingClimb, RACrossingDescend, RAReduceClimb, RAReduceDescend,
	RAIncreaseClimb, RAIncreaseDescend,
}

// Sense is the vertical direction commanded by an RA.
type Sense int

const (
	SenseDown Sense = -1
	SenseNone Sense = 0
	SenseUp   Sense = 1
)

func (k AdvisoryType) String() string {
	switch k {
	case Clear:
		return "CLEAR"
	case TA:
		return "TA"
	case RAMaintain:
		return "RA_MAINTAIN"
	case RADoNotClimb:
		return "RA_DO_NOT_CLIMB"
	case RADoNotDescend:
		return "RA_DO_NOT_DESCEND"
	case RAClimb:
		return "RA_CLIMB"
	case RADescend:
		return "RA_DESCEND"
	case RACrossingClimb:
		return "RA_CROSSING_CLIMB"
	case RACrossingDescend:
		return "RA_CROSSING_DESCEND"
	case RAReduceClimb:
		return "RA_REDUCE_CLIMB"
	case RAReduceDescend:
		return "RA_REDUCE_DESCEND"
	case RAIncreaseClimb:
		return "RA_INCREASE_CLIMB"
	case RAIncreaseDescend:
		return "RA_INCREASE_DESCEND"
	}
	return fmt.Sprintf("AdvisoryType(%d)", int(k))
}

func ParseAdvisoryType(s string) (AdvisoryType, error) {
	for _, k := range AllAdvisoryTypes {
		if k.String() == s {
			return k, nil
		}
	}
	return Clear, fmt.Errorf("unknown advisory type %q", s)
}

func (k AdvisoryType) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *AdvisoryType) UnmarshalText(b []byte) error {
	v, err := ParseAdvisoryType(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IsRA reports whether k is any resolution advisory.
func (k AdvisoryType) IsRA() bool {
	switch k {
	case Clear, TA:
		return false
	default:
		return true
	}
}

// Tier is the escalation tier: 0 CLEAR, 1 TA, 2 preventive/maintain,
// 3 corrective, 4 strengthened.
func (k AdvisoryType) Tier() int {
	switch k {
	case Clear:
		return 0
	case TA:
		return 1
	case RAMaintain, RADoNotClimb, RADoNotDescend:
		return 2
	case RAClimb, RADescend, RACrossingClimb, RACrossingDescend, RAReduceClimb, RAReduceDescend:
		return 3
	case RAIncreaseClimb, RAIncreaseDescend:
		return 4
	}
	return 0
}

// Sense classifies k for RA coordination. Weakening and preventive RAs are
// neutral: they restrict the vertical rate rather than command a direction.
func (k AdvisoryType) Sense() Sense {
	switch k {
	case RAClimb, RAIncreaseClimb, RACrossingClimb:
		return SenseUp
	case RADescend, RAIncreaseDescend, RACrossingDescend:
		return SenseDown
	case Clear, TA, RAMaintain, RAReduceClimb, RAReduceDescend, RADoNotClimb, RADoNotDescend:
		return SenseNone
	}
	return SenseNone
}

// Opposite returns the coordinated opposite of k. Variants without a
// directional partner map to themselves.
func (k AdvisoryType) Opposite() AdvisoryType {
	switch k {
	case RAClimb:
		return RADescend
	case RADescend:
		return RAClimb
	case RAIncreaseClimb:
		return RAIncreaseDescend
	case RAIncreaseDescend:
		return RAIncreaseClimb
	case RAReduceClimb:
		return RAReduceDescend
	case RAReduceDescend:
		return RAReduceClimb
	case RACrossingClimb:
		return RACrossingDescend
	case RACrossingDescend:
		return RACrossingClimb
	case RADoNotClimb:
		return RADoNotDescend
	case RADoNotDescend:
		return RADoNotClimb
	case Clear, TA, RAMaintain:
		return k
	}
	return k
}
