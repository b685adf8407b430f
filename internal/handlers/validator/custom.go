package validator

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// target, group and primer names: gene symbols like "IL-6", "18S rRNA" or "Actb.2"
	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 ._+-]*$`)
)

func nameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return nameRegex.MatchString(val)
}

func finiteValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(float64)
	if !ok {
		return false
	}
	// NaN fails both comparisons; infinities fail one of them
	return val > -maxVolume && val < maxVolume
}

// samplesValidator bounds the reaction count; the product is taken in float64 so it cannot wrap.
func samplesValidator(sl validator.StructLevel) {
	s, ok := sl.Current().Interface().(samplesForm)
	if !ok {
		return
	}

	reactions := float64(len(s.Groups)) * float64(s.Repeat) * float64(len(s.Targets))
	if reactions > maxReactions {
		sl.ReportError(s.Repeat, "repeat", "Repeat", "max_reactions", strconv.Itoa(maxReactions))
	}
}
