// Package buildcfg applies the build-time configuration override that
// silences source-map warnings for the fast-memoize dependency, whose
// published source maps reference sources that are not shipped.
package buildcfg

import "strings"

// Pattern sources registered as warning-suppression rules.
const (
	FastMemoizeModulePattern = `node_modules/fast-memoize`
	SourceMapMessagePattern  = `Failed to parse source map`
)

const sourceMapLoaderName = "source-map-loader"

// Apply mutates cfg in place and returns it, matching the shape the build
// tool expects from an override hook.
//
// Two things happen: the fast-memoize module pattern and the source-map
// message pattern are added to the warning-suppression list, and the rule
// that runs source-map extraction (if one can be found) gets the module
// pattern prepended to its exclusion list. The lookup is best-effort: a
// configuration without a recognizable source-map rule passes through with
// only the suppression list changed, never an error.
func Apply(cfg *Config) *Config {
	if cfg == nil {
		cfg = &Config{}
	}

	cfg.IgnoreWarnings = append(cfg.IgnoreWarnings,
		IgnoreRule{Module: FastMemoizeModulePattern},
		IgnoreRule{Message: SourceMapMessagePattern},
	)

	if rule, ok := findSourceMapRule(cfg); ok {
		rule.Exclude = append([]string{FastMemoizeModulePattern}, rule.Exclude...)
	}

	return cfg
}

// findSourceMapRule walks the module rules, including nested oneOf/rules
// groups, for the first rule that invokes the source-map loader.
func findSourceMapRule(cfg *Config) (*Rule, bool) {
	if cfg.Module == nil {
		return nil, false
	}
	return findRule(cfg.Module.Rules)
}

func findRule(rules []*Rule) (*Rule, bool) {
	for _, r := range rules {
		if r == nil {
			continue
		}
		if usesSourceMapLoader(r) {
			return r, true
		}
		if found, ok := findRule(r.OneOf); ok {
			return found, ok
		}
		if found, ok := findRule(r.Rules); ok {
			return found, ok
		}
	}
	return nil, false
}

func usesSourceMapLoader(r *Rule) bool {
	if strings.Contains(r.Loader, sourceMapLoaderName) {
		return true
	}
	for _, u := range r.Use {
		if strings.Contains(u, sourceMapLoaderName) {
			return true
		}
	}
	return false
}
