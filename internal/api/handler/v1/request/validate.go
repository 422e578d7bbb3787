package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// 3-30 of letters, digits, '_' or '.', no dot at either end, no "..".
	nickRegexPattern = `^(?![.])(?!.*\.\.)[A-Za-z0-9_.]{3,30}(?<![.])$`
	// 2-40 letters, digits, spaces, '-' or '_', not padded with spaces.
	insigniaNameRegexPattern = `^(?!\s)[\p{L}\p{N} _-]{2,40}(?<!\s)$`
)

var (
	nickExp         = regexp2.MustCompile(nickRegexPattern, regexp2.None)
	insigniaNameExp = regexp2.MustCompile(insigniaNameRegexPattern, regexp2.None)

	errInvalidNick         = errors.New("nick must be 3 to 30 letters, digits, '_' or '.', without leading, trailing or consecutive dots")
	errInvalidInsigniaName = errors.New("name must be 2 to 40 letters, digits, spaces, '-' or '_'")
)

func matches(exp *regexp2.Regexp, err error) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		ok, matchErr := exp.MatchString(s)
		if matchErr != nil || !ok {
			return err
		}
		return nil
	})
}
