// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outputs

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Output variable names produced by the built-in rule table.
const (
	KeySolarZ                         = "solar_z"
	KeyGroundPressure                 = "ground_pressure"
	KeyDirectSolarIrradiance          = "direct_solar_irradiance"
	KeyDiffuseSolarIrradiance         = "diffuse_solar_irradiance"
	KeyEnvironmentalIrradiance        = "environmental_irradiance"
	KeyPercentDirectSolarIrradiance   = "percent_direct_solar_irradiance"
	KeyPercentDiffuseSolarIrradiance  = "percent_diffuse_solar_irradiance"
	KeyPercentEnvironmentalIrradiance = "percent_environmental_irradiance"
	KeySolarSpectrum                  = "solar_spectrum"
	KeyScatteringAngle                = "scattering_angle"
	KeyAzimuthalAngleDifference       = "azimuthal_angle_difference"
	KeyVisibility                     = "visibility"
	KeyAOT550                         = "aot550"
	KeyIntegratedApparentReflectance  = "integrated_apparent_reflectance"
	KeyIntegratedApparentRadiance     = "integrated_apparent_radiance"
	KeyTotalGasTransmittance          = "total_gas_transmittance"
	KeyWVAboveAerosol                 = "wv_above_aerosol"
	KeyWVMixedWithAerosol             = "wv_mixed_with_aerosol"
	KeyWVUnderAerosol                 = "wv_under_aerosol"
)

// current is the line offset meaning "the line containing the search term".
const current = 0

// Rule locates one output variable in a report. When SearchTerm occurs in a
// line, the line LineOffset lines below it is split on whitespace and the
// token at TokenIndex is coerced and stored under Key.
type Rule struct {
	SearchTerm string
	LineOffset int
	TokenIndex int
	Key        string
	Coerce     Coercion
}

// rules is the built-in table. Several search terms are prefixes of others
// ("irr. at ground level" and "irr. at ground level (w/"); on the irradiance
// lines all of them match and each takes a different column of the same
// tabular line two rows down. Keys must stay unique: two rules writing the
// same key would make the result depend on table order.
var rules = []Rule{
	// search term, line offset, token index, key, coercion
	{"solar zenith angle", current, 3, KeySolarZ, Int},
	{"ground pressure", current, 3, KeyGroundPressure, Float},
	{"irr. at ground level", 2, 0, KeyDirectSolarIrradiance, Float},
	{"irr. at ground level (w/", 2, 1, KeyDiffuseSolarIrradiance, Float},
	{"irr. at ground level (w/m2/mic)", 2, 2, KeyEnvironmentalIrradiance, Float},
	{"% of irradiance", 2, 0, KeyPercentDirectSolarIrradiance, Float},
	{"% of irradiance at", 2, 1, KeyPercentDiffuseSolarIrradiance, Float},
	{"% of irradiance at ground level", 2, 2, KeyPercentEnvironmentalIrradiance, Float},
	{"sol. spect (in w/m2/mic)", 1, 0, KeySolarSpectrum, Float},
	{"scattering angle:", current, 2, KeyScatteringAngle, Float},
	{"azimuthal angle difference:", current, 7, KeyAzimuthalAngleDifference, Float},
	{"visibility :", current, 2, KeyVisibility, Float},
	{"opt. thick. 550 nm :", current, 9, KeyAOT550, Float},
	{"apparent reflectance", current, 2, KeyIntegratedApparentReflectance, Float},
	{"appar. rad.(w/m2/sr/mic)", current, 5, KeyIntegratedApparentRadiance, Float},
	{"total gaseous transmittance", current, 3, KeyTotalGasTransmittance, Float},
	{"wv above aerosol", current, 4, KeyWVAboveAerosol, Float},
	{"wv mixed with aerosol", current, 10, KeyWVMixedWithAerosol, Float},
	{"wv under aerosol", current, 4, KeyWVUnderAerosol, Float},
}

// Rules returns a copy of the built-in rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// ValidateRules checks a rule table for duplicate keys, duplicate search
// terms, empty fields, negative offsets or indices, and missing coercions.
// It returns nil for a usable table and otherwise one error listing every
// problem found.
func ValidateRules(table []Rule) error {
	var problems []string
	keys := make(map[string]int, len(table))
	terms := make(map[string]int, len(table))

	for i, r := range table {
		if r.Key == "" {
			problems = append(problems, fmt.Sprintf("rule %d: empty key", i))
		} else if j, dup := keys[r.Key]; dup {
			problems = append(problems, fmt.Sprintf("rule %d: key %q already used by rule %d", i, r.Key, j))
		} else {
			keys[r.Key] = i
		}

		if r.SearchTerm == "" {
			problems = append(problems, fmt.Sprintf("rule %d (%s): empty search term", i, r.Key))
		} else if j, dup := terms[r.SearchTerm]; dup {
			problems = append(problems, fmt.Sprintf("rule %d (%s): search term %q already used by rule %d", i, r.Key, r.SearchTerm, j))
		} else {
			terms[r.SearchTerm] = i
		}

		if r.LineOffset < 0 {
			problems = append(problems, fmt.Sprintf("rule %d (%s): negative line offset %d", i, r.Key, r.LineOffset))
		}
		if r.TokenIndex < 0 {
			problems = append(problems, fmt.Sprintf("rule %d (%s): negative token index %d", i, r.Key, r.TokenIndex))
		}
		if r.Coerce.Fn == nil {
			problems = append(problems, fmt.Sprintf("rule %d (%s): no coercion", i, r.Key))
		}
	}

	if len(problems) > 0 {
		return errors.Newf("invalid rule table: %s", strings.Join(problems, "; "))
	}
	return nil
}
