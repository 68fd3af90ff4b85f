package buildcfg

import (
	"encoding/json"
	"fmt"
)

// Config models the subset of a bundler configuration the override touches.
// Unknown keys round-trip untouched through a raw remainder so the transform
// is shape-preserving for everything it doesn't understand.
type Config struct {
	IgnoreWarnings []IgnoreRule
	Module         *Module

	rest map[string]json.RawMessage
}

// IgnoreRule suppresses build warnings matching a module path pattern, a
// message pattern, or both. Patterns are regular expression sources.
type IgnoreRule struct {
	Module  string `json:"module,omitempty"`
	Message string `json:"message,omitempty"`
}

// Module holds the module-processing section of the configuration.
type Module struct {
	Rules []*Rule

	rest map[string]json.RawMessage
}

// Rule is a module-processing rule. The bundler allows loaders to appear as
// a scalar, a list of names, or a list of objects carrying options; the
// decoder flattens all of those into Use for matching, while the original
// "use" value is kept verbatim and re-emitted as-is so loader options
// survive the round trip.
type Rule struct {
	Loader  string
	Use     []string
	Enforce string
	Exclude []string
	OneOf   []*Rule
	Rules   []*Rule

	useRaw json.RawMessage
	rest   map[string]json.RawMessage
}

func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["ignoreWarnings"]; ok {
		if err := json.Unmarshal(v, &c.IgnoreWarnings); err != nil {
			return fmt.Errorf("ignoreWarnings: %w", err)
		}
		delete(raw, "ignoreWarnings")
	}
	if v, ok := raw["module"]; ok {
		if err := json.Unmarshal(v, &c.Module); err != nil {
			return fmt.Errorf("module: %w", err)
		}
		delete(raw, "module")
	}
	c.rest = raw
	return nil
}

func (c Config) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.rest)+2)
	for k, v := range c.rest {
		out[k] = v
	}
	if len(c.IgnoreWarnings) > 0 {
		out["ignoreWarnings"] = c.IgnoreWarnings
	}
	if c.Module != nil {
		out["module"] = c.Module
	}
	return json.Marshal(out)
}

func (m *Module) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["rules"]; ok {
		if err := json.Unmarshal(v, &m.Rules); err != nil {
			return fmt.Errorf("rules: %w", err)
		}
		delete(raw, "rules")
	}
	m.rest = raw
	return nil
}

func (m Module) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.rest)+1)
	for k, v := range m.rest {
		out[k] = v
	}
	if len(m.Rules) > 0 {
		out["rules"] = m.Rules
	}
	return json.Marshal(out)
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["loader"]; ok {
		if err := json.Unmarshal(v, &r.Loader); err != nil {
			return fmt.Errorf("loader: %w", err)
		}
		delete(raw, "loader")
	}
	if v, ok := raw["use"]; ok {
		use, err := decodeLoaderList(v)
		if err != nil {
			return fmt.Errorf("use: %w", err)
		}
		r.Use = use
		r.useRaw = v
		delete(raw, "use")
	}
	if v, ok := raw["enforce"]; ok {
		if err := json.Unmarshal(v, &r.Enforce); err != nil {
			return fmt.Errorf("enforce: %w", err)
		}
		delete(raw, "enforce")
	}
	if v, ok := raw["exclude"]; ok {
		exclude, err := decodeStringList(v)
		if err != nil {
			return fmt.Errorf("exclude: %w", err)
		}
		r.Exclude = exclude
		delete(raw, "exclude")
	}
	if v, ok := raw["oneOf"]; ok {
		if err := json.Unmarshal(v, &r.OneOf); err != nil {
			return fmt.Errorf("oneOf: %w", err)
		}
		delete(raw, "oneOf")
	}
	if v, ok := raw["rules"]; ok {
		if err := json.Unmarshal(v, &r.Rules); err != nil {
			return fmt.Errorf("rules: %w", err)
		}
		delete(raw, "rules")
	}
	r.rest = raw
	return nil
}

func (r Rule) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.rest)+6)
	for k, v := range r.rest {
		out[k] = v
	}
	if r.Loader != "" {
		out["loader"] = r.Loader
	}
	if len(r.useRaw) > 0 {
		out["use"] = r.useRaw
	} else if len(r.Use) > 0 {
		out["use"] = r.Use
	}
	if r.Enforce != "" {
		out["enforce"] = r.Enforce
	}
	if len(r.Exclude) > 0 {
		out["exclude"] = r.Exclude
	}
	if len(r.OneOf) > 0 {
		out["oneOf"] = r.OneOf
	}
	if len(r.Rules) > 0 {
		out["rules"] = r.Rules
	}
	return json.Marshal(out)
}

// decodeStringList accepts a scalar string or an array of strings.
func decodeStringList(data json.RawMessage) ([]string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return []string{s}, nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// decodeLoaderList accepts a scalar loader name, an array of names, or an
// array of {"loader": name, ...} objects, and flattens to the names.
func decodeLoaderList(data json.RawMessage) ([]string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return []string{s}, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for i, entry := range entries {
		var name string
		if err := json.Unmarshal(entry, &name); err == nil {
			names = append(names, name)
			continue
		}
		var obj struct {
			Loader string `json:"loader"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		names = append(names, obj.Loader)
	}
	return names, nil
}
