package config

import (
	"os"

	"titrate/domain/titration"
	"titrate/internal/errors"

	"github.com/tidwall/gjson"
)

// LoadScenarioFile overlays the fields present in a JSON scenario file onto base.
func LoadScenarioFile(path string, base titration.Scenario) (titration.Scenario, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "failed to read scenario file %s", path)
	}
	return OverlayScenario(body, base)
}

// OverlayScenario applies the keys present in a JSON document to base.
// Absent keys keep base's value, so partial documents are accepted.
func OverlayScenario(body []byte, base titration.Scenario) (titration.Scenario, error) {
	if !gjson.ValidBytes(body) {
		return base, errors.ConfigInvalid("scenario is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return base, errors.ConfigInvalid("scenario must be a JSON object")
	}
	s := base

	if r := doc.Get("ratio"); r.Exists() {
		var ratio titration.Ratio
		switch {
		case r.IsArray():
			for _, v := range r.Array() {
				if v.Type != gjson.Number {
					return base, errors.ConfigInvalid("ratio entries must be numbers, got %s", v.Raw)
				}
				ratio = append(ratio, v.Float())
			}
		case r.Type == gjson.String:
			parsed, err := titration.ParseRatio(r.String())
			if err != nil {
				return base, errors.ConfigInvalid("ratio: %v", err)
			}
			ratio = parsed
		default:
			return base, errors.ConfigInvalid("ratio must be an array or a string like \"1:1:1:1\"")
		}
		s.Ratio = ratio
	}

	floats := map[string]*float64{
		"c_analyte":   &s.CAnalyte,
		"c_titrant":   &s.CTitrant,
		"v_analyte":   &s.VAnalyte,
		"v_titrant":   &s.VTitrant,
		"initial_vol": &s.InitialVol,
		"final_vol":   &s.FinalVol,
		"increment":   &s.Increment,
		"k":           &s.K,
		"k2":          &s.K2,
	}
	for key, dst := range floats {
		v := doc.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.Number {
			return base, errors.ConfigInvalid("%s must be a number, got %s", key, v.Raw)
		}
		*dst = v.Float()
	}

	bools := map[string]*bool{
		"strong_analyte": &s.StrongAnalyte,
		"strong_titrant": &s.StrongTitrant,
	}
	for key, dst := range bools {
		v := doc.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.True && v.Type != gjson.False {
			return base, errors.ConfigInvalid("%s must be a boolean, got %s", key, v.Raw)
		}
		*dst = v.Bool()
	}

	if v := doc.Get("unit"); v.Exists() {
		s.Unit = titration.Unit(v.String())
	}
	if v := doc.Get("kind"); v.Exists() {
		kind, err := titration.ParseKind(v.String())
		if err != nil {
			return base, errors.ConfigInvalid("%v", err)
		}
		s.Kind = kind
	}
	return s, nil
}
