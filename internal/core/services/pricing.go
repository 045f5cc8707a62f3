package services

import (
	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

// PricingStrategy prices a single trip.
type PricingStrategy interface {
	ComputeCost(trip *domain.Trip) float64
}

// CasualPricing charges the full per-kilometre rate.
type CasualPricing struct {
	PerKM float64
}

func (p CasualPricing) ComputeCost(trip *domain.Trip) float64 {
	return trip.DistanceKM * p.PerKM
}

// MemberPricing charges the reduced member rate.
type MemberPricing struct {
	PerKM float64
}

func (p MemberPricing) ComputeCost(trip *domain.Trip) float64 {
	return trip.DistanceKM * p.PerKM
}

// PeakHourPricing decorates another strategy with a flat surcharge
// multiplier.
type PeakHourPricing struct {
	Base       PricingStrategy
	Multiplier float64
}

func (p PeakHourPricing) ComputeCost(trip *domain.Trip) float64 {
	return p.Base.ComputeCost(trip) * p.Multiplier
}

// PricingConfig carries the tariff knobs. BaseFare and PerKMRate feed
// the flat batch fare model; the remaining fields drive the per-rider
// strategies.
type PricingConfig struct {
	BaseFare       float64
	PerKMRate      float64
	CasualPerKM    float64
	MemberPerKM    float64
	PeakMultiplier float64
	PeakHours      []int
}

// Pricer picks the strategy matching a rider and applies the peak
// surcharge for trips starting inside the configured hours.
type Pricer struct {
	cfg       PricingConfig
	peakHours map[int]bool
}

func NewPricer(cfg PricingConfig) *Pricer {
	hours := make(map[int]bool, len(cfg.PeakHours))
	for _, h := range cfg.PeakHours {
		hours[h] = true
	}
	return &Pricer{cfg: cfg, peakHours: hours}
}

// StrategyFor returns the per-kilometre strategy for the rider type.
// Riders default to the member rate.
func (p *Pricer) StrategyFor(user domain.User) PricingStrategy {
	if user != nil && user.UserType() == domain.UserCasual {
		return CasualPricing{PerKM: p.cfg.CasualPerKM}
	}
	return MemberPricing{PerKM: p.cfg.MemberPerKM}
}

// IsPeakHour reports whether the hour falls in the surcharge window.
func (p *Pricer) IsPeakHour(hour int) bool {
	return p.peakHours[hour]
}

// TripCost prices the trip for its own rider. The surcharge applies
// when the trip starts in a peak hour, or always when forcePeak is
// set.
func (p *Pricer) TripCost(trip *domain.Trip, forcePeak bool) float64 {
	strategy := p.StrategyFor(trip.User)
	if forcePeak || p.IsPeakHour(trip.StartTime.Hour()) {
		strategy = PeakHourPricing{Base: strategy, Multiplier: p.cfg.PeakMultiplier}
	}
	return strategy.ComputeCost(trip)
}

// BatchFares prices many distances in one pass with the flat fare
// model: base fare plus distance times the per-kilometre rate.
func (p *Pricer) BatchFares(distances []float64) []float64 {
	fares := make([]float64, len(distances))
	for i, d := range distances {
		fares[i] = p.cfg.BaseFare + d*p.cfg.PerKMRate
	}
	return fares
}
