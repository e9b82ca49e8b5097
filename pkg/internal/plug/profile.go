package plug

import "math"

// Profile describes the engineering stress-strain curve the synthetic source
// follows: linear elastic up to yield, a flat plateau, sinusoidal hardening to
// the ultimate, linear necking, then fracture to zero load.
type Profile struct {
	ModulusGPa        float64 `mapstructure:"modulus_gpa" json:"modulus_gpa"`
	YieldStressMPa    float64 `mapstructure:"yield_stress_mpa" json:"yield_stress_mpa"`
	PlateauStrain     float64 `mapstructure:"plateau_strain" json:"plateau_strain"`
	UltimateStressMPa float64 `mapstructure:"ultimate_stress_mpa" json:"ultimate_stress_mpa"`
	UltimateStrain    float64 `mapstructure:"ultimate_strain" json:"ultimate_strain"`
	FractureStrain    float64 `mapstructure:"fracture_strain" json:"fracture_strain"`
	NeckingDrop       float64 `mapstructure:"necking_drop" json:"necking_drop"`
	StrainRatePerSec  float64 `mapstructure:"strain_rate_per_sec" json:"strain_rate_per_sec"`
}

// DefaultProfile is a mild steel specimen pulled at 2 %/s.
func DefaultProfile() Profile {
	return Profile{
		ModulusGPa:        200,
		YieldStressMPa:    400,
		PlateauStrain:     0.02,
		UltimateStressMPa: 450,
		UltimateStrain:    0.10,
		FractureStrain:    0.14,
		NeckingDrop:       0.15,
		StrainRatePerSec:  0.02,
	}
}

// YieldStrain is the strain at which the elastic line reaches the yield stress.
func (p Profile) YieldStrain() float64 {
	if p.ModulusGPa <= 0 {
		return 0
	}
	return p.YieldStressMPa / (p.ModulusGPa * 1000)
}

// StressAt returns engineering stress in MPa for the given strain.
func (p Profile) StressAt(strain float64) float64 {
	ey := p.YieldStrain()
	ep := math.Max(p.PlateauStrain, ey)
	eu := math.Max(p.UltimateStrain, ep)
	ef := math.Max(p.FractureStrain, eu)

	switch {
	case strain <= 0:
		return 0
	case strain <= ey:
		return p.ModulusGPa * 1000 * strain
	case strain <= ep:
		return p.YieldStressMPa
	case strain <= eu:
		x := (strain - ep) / (eu - ep)
		return p.YieldStressMPa + (p.UltimateStressMPa-p.YieldStressMPa)*math.Sin(math.Pi/2*x)
	case strain <= ef:
		x := (strain - eu) / (ef - eu)
		return p.UltimateStressMPa * (1 - p.NeckingDrop*x)
	default:
		return 0
	}
}

// StrainAt returns the strain reached t seconds into the test.
func (p Profile) StrainAt(t float64) float64 {
	return p.StrainRatePerSec * t
}
