package decor

import (
	"sort"
	"strings"

	"github.com/sidprasad/caraspace/pkg/errors"
)

// ParamSet is one acceptable parameter combination for an annotation type.
// Annotation types that support multiple forms (e.g. "group") list several.
type ParamSet struct {
	Required []string
	Optional []string
}

// paramSchemas defines the valid parameters for every annotation type,
// constraints and directives alike.
var paramSchemas = map[string][]ParamSet{
	"orientation": {{Required: []string{"selector", "directions"}}},
	"cyclic":      {{Required: []string{"selector", "direction"}}},
	"group": {
		{Required: []string{"field", "groupOn", "addToGroup"}, Optional: []string{"selector"}},
		{Required: []string{"selector", "name"}},
	},
	"atomColor":    {{Required: []string{"selector", "value"}}},
	"size":         {{Required: []string{"selector", "height", "width"}}},
	"icon":         {{Required: []string{"selector", "path", "showLabels"}}},
	"edgeColor":    {{Required: []string{"field", "value"}, Optional: []string{"selector"}}},
	"projection":   {{Required: []string{"sig"}}},
	"attribute":    {{Required: []string{"field"}, Optional: []string{"selector"}}},
	"hideField":    {{Required: []string{"field"}, Optional: []string{"selector"}}},
	"hideAtom":     {{Required: []string{"selector"}}},
	"inferredEdge": {{Required: []string{"name", "selector"}}},
	"flag":         {{Required: []string{"name"}}},
}

// ParamSchema returns the acceptable parameter sets for an annotation type,
// or false if the type is unknown.
func ParamSchema(annotationType string) ([]ParamSet, bool) {
	sets, ok := paramSchemas[annotationType]
	return sets, ok
}

// AnnotationTypes returns all known annotation type names in sorted order.
func AnnotationTypes() []string {
	names := make([]string, 0, len(paramSchemas))
	for name := range paramSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateParams checks that the provided parameter names satisfy one of
// the acceptable parameter sets for the annotation type. It returns an
// INVALID_ANNOTATION error naming the missing or unknown parameters.
func ValidateParams(annotationType string, provided []string) error {
	sets, ok := paramSchemas[annotationType]
	if !ok {
		return errors.New(errors.ErrCodeInvalidAnnotation,
			"unknown annotation type %q (valid types: %s)", annotationType, strings.Join(AnnotationTypes(), ", "))
	}

	var failures []string
	for _, set := range sets {
		if err := validateParamSet(annotationType, provided, set); err == nil {
			return nil
		} else {
			failures = append(failures, errors.UserMessage(err))
		}
	}

	if len(sets) == 1 {
		return errors.New(errors.ErrCodeInvalidAnnotation, "%s", failures[0])
	}
	return errors.New(errors.ErrCodeInvalidAnnotation,
		"no valid parameter set for %q: %s", annotationType, strings.Join(failures, "; "))
}

func validateParamSet(annotationType string, provided []string, set ParamSet) error {
	var missing []string
	for _, req := range set.Required {
		if !contains(provided, req) {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeInvalidAnnotation,
			"missing required parameters for %q: [%s]", annotationType, strings.Join(missing, ", "))
	}

	var unknown []string
	for _, p := range provided {
		if !contains(set.Required, p) && !contains(set.Optional, p) {
			unknown = append(unknown, p)
		}
	}
	if len(unknown) > 0 {
		valid := append(append([]string{}, set.Required...), set.Optional...)
		return errors.New(errors.ErrCodeInvalidAnnotation,
			"unknown parameters for %q: [%s] (valid: [%s])",
			annotationType, strings.Join(unknown, ", "), strings.Join(valid, ", "))
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
