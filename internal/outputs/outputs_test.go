// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outputs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

func loadReport(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "report.txt"))
	require.NoError(t, err)
	return string(data)
}

func TestParseFullReport(t *testing.T) {
	out, err := Parse(loadReport(t), "")
	require.NoError(t, err)

	wantFloats := map[string]float64{
		KeyGroundPressure:                 1013.0,
		KeyDirectSolarIrradiance:          1229.512,
		KeyDiffuseSolarIrradiance:         269.433,
		KeyEnvironmentalIrradiance:        82.317,
		KeyPercentDirectSolarIrradiance:   0.7475,
		KeyPercentDiffuseSolarIrradiance:  0.1638,
		KeyPercentEnvironmentalIrradiance: 0.05,
		KeySolarSpectrum:                  1915.419,
		KeyScatteringAngle:                141.47,
		KeyAzimuthalAngleDifference:       74.0,
		KeyVisibility:                     8.49,
		KeyAOT550:                         0.5,
		KeyIntegratedApparentReflectance:  0.2354623,
		KeyIntegratedApparentRadiance:     128.125,
		KeyTotalGasTransmittance:          0.937,
		KeyWVAboveAerosol:                 0.942,
		KeyWVMixedWithAerosol:             0.941,
		KeyWVUnderAerosol:                 0.940,
	}
	for key, want := range wantFloats {
		got, err := out.Float(key)
		require.NoError(t, err, key)
		assert.InDelta(t, want, got, 1e-9, key)

		v, err := out.Get(key)
		require.NoError(t, err, key)
		assert.Equal(t, types.KindFloat, v.Kind(), key)
	}

	solarZ, err := out.SolarZ()
	require.NoError(t, err)
	assert.Equal(t, int64(32), solarZ)

	v, err := out.Get(KeySolarZ)
	require.NoError(t, err)
	assert.Equal(t, types.KindInt, v.Kind())

	assert.Len(t, out.Keys(), len(rules))
	assert.Empty(t, out.Stderr())
}

func TestNamedAccessors(t *testing.T) {
	out, err := Parse(loadReport(t), "")
	require.NoError(t, err)

	accessors := map[string]func() (float64, error){
		KeyGroundPressure:                 out.GroundPressure,
		KeyDirectSolarIrradiance:          out.DirectSolarIrradiance,
		KeyDiffuseSolarIrradiance:         out.DiffuseSolarIrradiance,
		KeyEnvironmentalIrradiance:        out.EnvironmentalIrradiance,
		KeyPercentDirectSolarIrradiance:   out.PercentDirectSolarIrradiance,
		KeyPercentDiffuseSolarIrradiance:  out.PercentDiffuseSolarIrradiance,
		KeyPercentEnvironmentalIrradiance: out.PercentEnvironmentalIrradiance,
		KeySolarSpectrum:                  out.SolarSpectrum,
		KeyScatteringAngle:                out.ScatteringAngle,
		KeyAzimuthalAngleDifference:       out.AzimuthalAngleDifference,
		KeyVisibility:                     out.Visibility,
		KeyAOT550:                         out.AOT550,
		KeyIntegratedApparentReflectance:  out.IntegratedApparentReflectance,
		KeyIntegratedApparentRadiance:     out.IntegratedApparentRadiance,
		KeyTotalGasTransmittance:          out.TotalGasTransmittance,
		KeyWVAboveAerosol:                 out.WVAboveAerosol,
		KeyWVMixedWithAerosol:             out.WVMixedWithAerosol,
		KeyWVUnderAerosol:                 out.WVUnderAerosol,
	}
	for key, fn := range accessors {
		got, err := fn()
		require.NoError(t, err, key)
		want, err := out.Float(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestParseStderrFails(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
	}{
		{name: "error message", stderr: "Error in parameter: invalid wavelength\n"},
		{name: "single space", stderr: " "},
		{name: "newline only", stderr: "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Parse(loadReport(t), tt.stderr)
			require.Error(t, err)
			assert.Nil(t, out)

			assert.True(t, errors.Is(err, ErrRunFailed))
			assert.True(t, errors.Is(err, ErrOutputParsing))
			assert.False(t, errors.Is(err, ErrExtraction))
			assert.False(t, errors.Is(err, ErrUnknownVariable))

			assert.Contains(t, err.Error(), "6S returned an error")
			assert.Contains(t, err.Error(), "invalid parameter inputs")
			assert.Contains(t, errors.GetAllDetails(err), tt.stderr)
		})
	}
}

func TestParseStderrIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Parse("anything", "bad input deck", WithLogger(zap.New(core).Sugar()))
	require.Error(t, err)

	entries := logs.FilterMessage("6S returned an error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "bad input deck", entries[0].ContextMap()["stderr"])
}

func TestParseLogsExtractedValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Parse("       ground pressure  [mb]     1013.00\n", "", WithLogger(zap.New(core).Sugar()))
	require.NoError(t, err)

	entries := logs.FilterMessage("extracted 6S outputs").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.EqualValues(t, 1, ctx["count"])
	assert.Equal(t, map[string]string{KeyGroundPressure: "1013"}, ctx["values"])
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "framed line", in: "*   ground pressure  [mb]  1013.00   *", want: "   ground pressure  [mb]  1013.00   "},
		{name: "banner", in: "******\n*    *\n", want: "\n    \n"},
		{name: "no asterisks", in: "a\tb  c\r\n", want: "a\tb  c\r\n"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "*")
		})
	}
}

func TestFulltextHasNoAsterisks(t *testing.T) {
	report := loadReport(t)
	require.Contains(t, report, "*")

	out, err := Parse(report, "")
	require.NoError(t, err)
	assert.NotContains(t, out.Fulltext(), "*")
	assert.Equal(t, strings.ReplaceAll(report, "*", ""), out.Fulltext())
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "no terminator", in: "a\nb", want: []string{"a", "b"}},
		{name: "trailing terminator", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "blank lines kept", in: "a\n\n\nb\n", want: []string{"a", "", "", "b"}},
		{name: "crlf", in: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "bare cr", in: "a\rb", want: []string{"a", "b"}},
		{name: "only newline", in: "\n", want: []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLines(tt.in))
		})
	}
}

func TestIrradianceColumnsFromOneLine(t *testing.T) {
	report := strings.Join([]string{
		"      irr. at ground level (w/m2/mic)",
		"         direct solar   diffuse atm.   environment",
		"            10.5 2.3 0.8",
	}, "\n")

	out, err := Parse(report, "")
	require.NoError(t, err)

	direct, err := out.DirectSolarIrradiance()
	require.NoError(t, err)
	diffuse, err := out.DiffuseSolarIrradiance()
	require.NoError(t, err)
	env, err := out.EnvironmentalIrradiance()
	require.NoError(t, err)

	assert.Equal(t, 10.5, direct)
	assert.Equal(t, 2.3, diffuse)
	assert.Equal(t, 0.8, env)
	assert.Len(t, out.Keys(), 3)
}

func TestShorterSearchTermMatchesAlone(t *testing.T) {
	report := "irr. at ground level\nheader\n1.0 2.0 3.0\n"

	out, err := Parse(report, "")
	require.NoError(t, err)

	assert.Equal(t, []string{KeyDirectSolarIrradiance}, out.Keys())
}

func TestGroundPressure(t *testing.T) {
	out, err := Parse("       ground pressure  [mb]     1013.0", "")
	require.NoError(t, err)

	got, err := out.GroundPressure()
	require.NoError(t, err)
	assert.Equal(t, 1013.0, got)
}

func TestLastMatchWins(t *testing.T) {
	report := "ground pressure [mb] 1000.0\nground pressure [mb] 900.5\n"

	out, err := Parse(report, "")
	require.NoError(t, err)

	got, err := out.GroundPressure()
	require.NoError(t, err)
	assert.Equal(t, 900.5, got)
}

func TestUnmatchedKeysAreAbsent(t *testing.T) {
	out, err := Parse("nothing to see here\n", "")
	require.NoError(t, err)

	assert.Empty(t, out.Keys())
	assert.False(t, out.Has(KeyAOT550))

	_, err = out.AOT550()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownVariable))
}

func TestParseExtractionErrors(t *testing.T) {
	tests := []struct {
		name       string
		report     string
		wantKey    string
		wantReason Reason
		wantLine   int
		wantTarget int
		wantToken  string
	}{
		{
			name:       "offset past end of report",
			report:     "header\n   irr. at ground level (w/m2/mic)\n   direct diffuse env\n",
			wantKey:    KeyDirectSolarIrradiance,
			wantReason: ReasonLineOffset,
			wantLine:   1,
			wantTarget: 3,
		},
		{
			name:       "token index past end of line",
			report:     "   ground pressure  [mb]\n",
			wantKey:    KeyGroundPressure,
			wantReason: ReasonTokenIndex,
			wantLine:   0,
			wantTarget: 0,
		},
		{
			name:       "token is not a number",
			report:     "x\n   ground pressure  [mb]  n/a\n",
			wantKey:    KeyGroundPressure,
			wantReason: ReasonCoercion,
			wantLine:   1,
			wantTarget: 1,
			wantToken:  "n/a",
		},
		{
			name:       "int field is not a number",
			report:     "   solar zenith angle:   north deg\n",
			wantKey:    KeySolarZ,
			wantReason: ReasonCoercion,
			wantToken:  "north",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Parse(tt.report, "")
			require.Error(t, err)
			assert.Nil(t, out)

			assert.True(t, errors.Is(err, ErrExtraction))
			assert.True(t, errors.Is(err, ErrOutputParsing))
			assert.False(t, errors.Is(err, ErrRunFailed))
			assert.False(t, errors.Is(err, ErrUnknownVariable))

			var extErr *ExtractionError
			require.True(t, errors.As(err, &extErr))
			assert.Equal(t, tt.wantKey, extErr.Rule.Key)
			assert.Equal(t, tt.wantReason, extErr.Reason)
			assert.Equal(t, tt.wantLine, extErr.Line)
			assert.Equal(t, tt.wantTarget, extErr.TargetLine)
			assert.Equal(t, tt.wantToken, extErr.Token)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestGetUnknownVariable(t *testing.T) {
	out, err := Parse(loadReport(t), "")
	require.NoError(t, err)

	for _, name := range []string{"", "not_a_variable", "Solar_Z", "fulltext"} {
		v, err := out.Get(name)
		require.Error(t, err, name)
		assert.Equal(t, Value{}, v)
		assert.True(t, errors.Is(err, ErrUnknownVariable), name)
		assert.True(t, errors.Is(err, ErrOutputParsing), name)
		assert.False(t, errors.Is(err, ErrExtraction), name)
		assert.Contains(t, err.Error(), "does not exist")
	}

	_, err = out.Float("not_a_variable")
	assert.True(t, errors.Is(err, ErrUnknownVariable))
	_, err = out.Int("not_a_variable")
	assert.True(t, errors.Is(err, ErrUnknownVariable))
}

func TestRunsDoNotShareValues(t *testing.T) {
	first, err := Parse("ground pressure [mb] 1000.0\n", "")
	require.NoError(t, err)
	second, err := Parse("visibility : 23.0 km\n", "")
	require.NoError(t, err)

	assert.Equal(t, []string{KeyGroundPressure}, first.Keys())
	assert.Equal(t, []string{KeyVisibility}, second.Keys())

	copied := first.Values()
	copied[KeyAOT550] = FloatValue(9)
	assert.False(t, first.Has(KeyAOT550))

	lines := first.Lines()
	lines[0] = "changed"
	assert.Equal(t, "ground pressure [mb] 1000.0", first.Lines()[0])
}

func TestWithRules(t *testing.T) {
	table := []Rule{
		{SearchTerm: "wavelength", LineOffset: 0, TokenIndex: 1, Key: "wavelength", Coerce: Float},
	}

	out, err := Parse("wavelength 0.5300 micron\nground pressure [mb] 1000\n", "", WithRules(table))
	require.NoError(t, err)

	assert.Equal(t, []string{"wavelength"}, out.Keys())
	got, err := out.Float("wavelength")
	require.NoError(t, err)
	assert.Equal(t, 0.53, got)
}

func TestWithRulesRejectsInvalidTable(t *testing.T) {
	tests := []struct {
		name    string
		table   []Rule
		wantMsg string
	}{
		{
			name:    "missing coercion",
			table:   []Rule{{SearchTerm: "ground pressure", TokenIndex: 3, Key: "gp"}},
			wantMsg: "no coercion",
		},
		{
			name: "duplicate key",
			table: []Rule{
				{SearchTerm: "ground pressure", TokenIndex: 3, Key: "k", Coerce: Float},
				{SearchTerm: "visibility :", TokenIndex: 2, Key: "k", Coerce: Float},
			},
			wantMsg: `key "k" already used`,
		},
		{
			name:    "empty table entry",
			table:   []Rule{{}},
			wantMsg: "empty key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				out *Outputs
				err error
			)
			require.NotPanics(t, func() {
				out, err = Parse("ground pressure [mb] 1013.0\n", "", WithRules(tt.table))
			})
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, ErrInvalidRules))
			assert.True(t, errors.Is(err, ErrOutputParsing))
			assert.False(t, errors.Is(err, ErrExtraction))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestWriteOutputFileRoundTrip(t *testing.T) {
	out, err := Parse(loadReport(t), "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sixs-output.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than nothing"), 0o644))

	require.NoError(t, out.WriteOutputFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out.Fulltext(), string(data))
}

func TestWriteOutputFileMissingDir(t *testing.T) {
	out, err := Parse("ground pressure [mb] 1000\n", "")
	require.NoError(t, err)

	err = out.WriteOutputFile(filepath.Join(t.TempDir(), "missing", "out.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output file")
}
