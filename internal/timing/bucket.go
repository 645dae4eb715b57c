package timing

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// BucketKey builds the discretized feature key a sample or query falls
// into. Only features known to the tool's cost model participate;
// unknown features are ignored. Missing features take their documented
// default so that calls omitting a feature land in the same bucket as
// calls passing the default explicitly.
func (c Catalog) BucketKey(tool string, features map[string]float64) string {
	def, ok := c[tool]
	if !ok || len(def.Features) == 0 {
		return ""
	}

	names := make([]string, 0, len(def.Features))
	for name := range def.Features {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		fd := def.Features[name]
		value, present := features[name]
		if !present {
			value = fd.Default
		}
		bucketed := math.Round(value/fd.BucketStep) * fd.BucketStep
		parts = append(parts, name+"="+strconv.FormatFloat(bucketed, 'g', -1, 64))
	}

	return strings.Join(parts, "|")
}

// Normalize returns the tool's complexity descriptor: every known
// feature with either the caller's value or the documented default.
// Unknown features in the input are dropped.
func (c Catalog) Normalize(tool string, features map[string]float64) map[string]float64 {
	def, ok := c[tool]
	if !ok {
		return map[string]float64{}
	}

	normalized := make(map[string]float64, len(def.Features))
	for name, fd := range def.Features {
		if value, present := features[name]; present {
			normalized[name] = value
		} else {
			normalized[name] = fd.Default
		}
	}
	return normalized
}
