// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outputs

// Named accessors for the built-in vocabulary. Each fails with
// ErrUnknownVariable when the report did not contain the value.

// SolarZ returns the solar zenith angle in whole degrees.
func (o *Outputs) SolarZ() (int64, error) { return o.Int(KeySolarZ) }

// GroundPressure returns ground pressure in millibars.
func (o *Outputs) GroundPressure() (float64, error) { return o.Float(KeyGroundPressure) }

// DirectSolarIrradiance returns direct solar irradiance at ground level (W/m2/micron).
func (o *Outputs) DirectSolarIrradiance() (float64, error) { return o.Float(KeyDirectSolarIrradiance) }

// DiffuseSolarIrradiance returns diffuse solar irradiance at ground level (W/m2/micron).
func (o *Outputs) DiffuseSolarIrradiance() (float64, error) { return o.Float(KeyDiffuseSolarIrradiance) }

// EnvironmentalIrradiance returns environmental irradiance at ground level (W/m2/micron).
func (o *Outputs) EnvironmentalIrradiance() (float64, error) { return o.Float(KeyEnvironmentalIrradiance) }

// PercentDirectSolarIrradiance returns the direct share of ground-level irradiance.
func (o *Outputs) PercentDirectSolarIrradiance() (float64, error) { return o.Float(KeyPercentDirectSolarIrradiance) }

// PercentDiffuseSolarIrradiance returns the diffuse share of ground-level irradiance.
func (o *Outputs) PercentDiffuseSolarIrradiance() (float64, error) { return o.Float(KeyPercentDiffuseSolarIrradiance) }

// PercentEnvironmentalIrradiance returns the environmental share of ground-level irradiance.
func (o *Outputs) PercentEnvironmentalIrradiance() (float64, error) { return o.Float(KeyPercentEnvironmentalIrradiance) }

// SolarSpectrum returns the solar spectrum value (W/m2/micron).
func (o *Outputs) SolarSpectrum() (float64, error) { return o.Float(KeySolarSpectrum) }

// ScatteringAngle returns the scattering angle in degrees.
func (o *Outputs) ScatteringAngle() (float64, error) { return o.Float(KeyScatteringAngle) }

// AzimuthalAngleDifference returns the sun-view azimuth difference in degrees.
func (o *Outputs) AzimuthalAngleDifference() (float64, error) { return o.Float(KeyAzimuthalAngleDifference) }

// Visibility returns the visibility in km.
func (o *Outputs) Visibility() (float64, error) { return o.Float(KeyVisibility) }

// AOT550 returns the aerosol optical thickness at 550 nm.
func (o *Outputs) AOT550() (float64, error) { return o.Float(KeyAOT550) }

// IntegratedApparentReflectance returns the apparent reflectance at the sensor.
func (o *Outputs) IntegratedApparentReflectance() (float64, error) { return o.Float(KeyIntegratedApparentReflectance) }

// IntegratedApparentRadiance returns the apparent radiance (W/m2/sr/micron).
func (o *Outputs) IntegratedApparentRadiance() (float64, error) { return o.Float(KeyIntegratedApparentRadiance) }

// TotalGasTransmittance returns the total gaseous transmittance.
func (o *Outputs) TotalGasTransmittance() (float64, error) { return o.Float(KeyTotalGasTransmittance) }

// WVAboveAerosol returns the reflectance with water vapour above the aerosol layer.
func (o *Outputs) WVAboveAerosol() (float64, error) { return o.Float(KeyWVAboveAerosol) }

// WVMixedWithAerosol returns the reflectance with water vapour mixed with aerosol.
func (o *Outputs) WVMixedWithAerosol() (float64, error) { return o.Float(KeyWVMixedWithAerosol) }

// WVUnderAerosol returns the reflectance with water vapour under the aerosol layer.
func (o *Outputs) WVUnderAerosol() (float64, error) { return o.Float(KeyWVUnderAerosol) }
