package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/services"
)

// Pricing mirrors configs/pricing.yaml.
type Pricing struct {
	BaseFare       float64 `yaml:"base_fare"`
	PerKMRate      float64 `yaml:"per_km_rate"`
	CasualPerKM    float64 `yaml:"casual_per_km"`
	MemberPerKM    float64 `yaml:"member_per_km"`
	PeakMultiplier float64 `yaml:"peak_multiplier"`
	PeakHours      []int   `yaml:"peak_hours"`
}

// DefaultPricing is the tariff used when no pricing file is configured.
func DefaultPricing() Pricing {
	return Pricing{
		BaseFare:       1.0,
		PerKMRate:      0.5,
		CasualPerKM:    1.0,
		MemberPerKM:    0.5,
		PeakMultiplier: 1.2,
		PeakHours:      []int{7, 8, 9, 17, 18, 19},
	}
}

// LoadPricing reads the tariff file, falling back to the defaults when
// the file does not exist. Fields left out of the file keep their
// default values.
func LoadPricing(path string) (Pricing, error) {
	pricing := DefaultPricing()
	if path == "" {
		return pricing, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pricing, nil
		}
		return pricing, fmt.Errorf("reading pricing config: %w", err)
	}
	if err := yaml.Unmarshal(data, &pricing); err != nil {
		return pricing, fmt.Errorf("parsing pricing config: %w", err)
	}
	return pricing, nil
}

// ToServiceConfig converts the file shape into the pricer's config.
func (p Pricing) ToServiceConfig() services.PricingConfig {
	return services.PricingConfig{
		BaseFare:       p.BaseFare,
		PerKMRate:      p.PerKMRate,
		CasualPerKM:    p.CasualPerKM,
		MemberPerKM:    p.MemberPerKM,
		PeakMultiplier: p.PeakMultiplier,
		PeakHours:      p.PeakHours,
	}
}
