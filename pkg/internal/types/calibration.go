package types

// ChannelCalibration is the affine map voltage*Slope + Offset for one channel.
type ChannelCalibration struct {
	Slope  float64 `mapstructure:"slope" json:"slope"`
	Offset float64 `mapstructure:"offset" json:"offset"`
	Unit   string  `mapstructure:"unit" json:"unit"`
}

// CalibrationParams holds the calibration of both channels: ch0 to newtons, ch1 to millimetres.
type CalibrationParams struct {
	Ch0 ChannelCalibration `mapstructure:"ch0" json:"ch0"`
	Ch1 ChannelCalibration `mapstructure:"ch1" json:"ch1"`
}

// SpecimenGeometry describes the specimen under test.
type SpecimenGeometry struct {
	CrossSectionAreaMM2 float64 `mapstructure:"cross_section_area_mm2" json:"cross_section_area_mm2"`
	GaugeLengthMM       float64 `mapstructure:"gauge_length_mm" json:"gauge_length_mm"`
	Material            string  `mapstructure:"material" json:"material"`
}

// ProcessedPoint is the calibrated and derived view of a single Sample.
// StiffnessGPa is nil until the rolling window is full.
type ProcessedPoint struct {
	Timestamp      float64  `json:"t"`
	ForceN         float64  `json:"force_n"`
	DisplacementMM float64  `json:"displacement_mm"`
	StressMPa      float64  `json:"stress_mpa"`
	Strain         float64  `json:"strain"`
	StiffnessGPa   *float64 `json:"stiffness_gpa,omitempty"`
	Ch0Voltage     float64  `json:"ch0_v"`
	Ch1Voltage     float64  `json:"ch1_v"`
}
