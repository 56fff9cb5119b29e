package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

var (
	titlePattern    = regexp.MustCompile(`^[a-zA-Z0-9\s\-',\.#\/&!()]+$`)
	locationPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-',\.#\/]+$`)
	countryPattern  = regexp.MustCompile(`^[a-zA-Z\s\-',\.]+$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
)

// FieldErrors holds one message per failed field in declaration order
type FieldErrors []string

// Error joins the messages with ", "
func (e FieldErrors) Error() string {
	return strings.Join(e, ", ")
}

func (e FieldErrors) asAppError() error {
	return &apperrors.AppError{
		Type:    apperrors.ErrorTypeValidation,
		Message: e.Error(),
		Err:     e,
	}
}

const maxPrice = 1e10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}

	register("title_chars", matches(titlePattern))
	register("location_chars", matches(locationPattern))
	register("country_chars", matches(countryPattern))
	register("not_digits", func(fl validator.FieldLevel) bool {
		return !digitsPattern.MatchString(fl.Field().String())
	})
	register("has_letter", matches(letterPattern))
	register("decimal", func(fl validator.FieldLevel) bool {
		_, ok := parseNumber(fl.Field().String())
		return ok
	})
	register("whole", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	register("positive", func(fl validator.FieldLevel) bool {
		n, _ := parseNumber(fl.Field().String())
		return n > 0
	})
	register("cents", func(fl validator.FieldLevel) bool {
		n, _ := parseNumber(fl.Field().String())
		return math.Abs(n*100-math.Round(n*100)) < 1e-6
	})
	// listings.price is NUMERIC(12, 2)
	register("price_cap", func(fl validator.FieldLevel) bool {
		n, _ := parseNumber(fl.Field().String())
		return n < maxPrice
	})
	register("atleast", func(fl validator.FieldLevel) bool {
		n, _ := strconv.Atoi(fl.Field().String())
		limit, _ := strconv.Atoi(fl.Param())
		return n >= limit
	})
	register("atmost", func(fl validator.FieldLevel) bool {
		n, _ := strconv.Atoi(fl.Field().String())
		limit, _ := strconv.Atoi(fl.Param())
		return n <= limit
	})
	register("category", func(fl validator.FieldLevel) bool {
		return entities.Category(fl.Field().String()).Valid()
	})

	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// check validates input and translates failures through messages, keyed by
// struct field then tag
func check(input interface{}, messages map[string]map[string]string) FieldErrors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{err.Error()}
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.StructField()][fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.StructField())
		}
		out = append(out, msg)
	}
	return out
}

// unknownKeys reports form keys that are neither allowed top-level keys nor
// allowed fields of the group object, e.g. "listing[foo]"
func unknownKeys(form url.Values, group string, fields []string, extra ...string) FieldErrors {
	allowed := make(map[string]bool, len(fields)+len(extra))
	for _, f := range fields {
		allowed[group+"["+f+"]"] = true
	}
	for _, k := range extra {
		allowed[k] = true
	}

	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out FieldErrors
	for _, k := range keys {
		if allowed[k] {
			continue
		}
		if name, ok := groupField(k, group); ok {
			out = append(out, fmt.Sprintf("%q is not allowed", group+"."+name))
			continue
		}
		out = append(out, fmt.Sprintf("%q is not allowed", k))
	}
	return out
}

func groupField(key, group string) (string, bool) {
	prefix := group + "["
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") {
		return "", false
	}
	return key[len(prefix) : len(key)-1], true
}

func hasGroup(form url.Values, group string) bool {
	for k := range form {
		if strings.HasPrefix(k, group+"[") {
			return true
		}
	}
	return false
}

func field(form url.Values, group, name string) string {
	return strings.TrimSpace(form.Get(group + "[" + name + "]"))
}
