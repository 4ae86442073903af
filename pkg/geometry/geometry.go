package geometry

import (
	"math"
)

const (
	MetersPerNM  = 1852.0
	MpsPerKnot   = 1852.0 / 3600.0
	FeetPerMeter = 3.28084
)

// --- Vector Helpers ---

// Vec2 is a horizontal vector in a local flat frame, X east and Y north (meters or m/s).
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Unit returns v scaled to length 1, or the zero vector if v has no length.
func (v Vec2) Unit() Vec2 {
	n := v.Norm()
	if n == 0 {
		return Vec2{}
	}
	return v.Scale(1 / n)
}

// --- Closest Point of Approach ---

// minRelSpeedSq is the squared relative speed (m^2/s^2) at or below which a pair is
// treated as non-closing.
const minRelSpeedSq = 1e-6

// ClosingTauAndDCPA returns the time to closest point of approach (s) and the
// horizontal miss distance at that point (m) for a relative position and velocity.
//
// tau is negative once the pair has passed its closest point, and +Inf when the
// relative speed is effectively zero (in which case d_cpa is the current range).
func ClosingTauAndDCPA(relPos, relVel Vec2) (tau, dCPA float64) {
	v2 := relVel.Dot(relVel)
	if v2 <= minRelSpeedSq {
		return math.Inf(1), relPos.Norm()
	}
	tau = -relPos.Dot(relVel) / v2
	dCPA = relPos.Add(relVel.Scale(tau)).Norm()
	return tau, dCPA
}

// --- Range / Bearing ---

// FromRangeBearing converts a slant-free range (m) and true bearing (degrees,
// clockwise from north) into an east/north offset.
func FromRangeBearing(rangeM, bearingDeg float64) Vec2 {
	b := bearingDeg * math.Pi / 180
	return Vec2{X: rangeM * math.Sin(b), Y: rangeM * math.Cos(b)}
}

// BearingDeg returns the true bearing of v in [0, 360).
func (v Vec2) BearingDeg() float64 {
	deg := math.Atan2(v.X, v.Y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

func NMToMeters(nm float64) float64 { return nm * MetersPerNM }

func MetersToNM(m float64) float64 { return m / MetersPerNM }
