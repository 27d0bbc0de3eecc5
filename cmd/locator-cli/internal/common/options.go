package common

import (
	"fmt"
	"strings"

	"github.com/molyee/scylladb/pkg/locator"
)

// ParseStrategyOptions parses repeated strategy options given in the
// key=value form.
func ParseStrategyOptions(oo []string) (locator.Config, error) {
	if len(oo) == 0 {
		return locator.NewConfig(nil), nil
	}

	m := make(map[string]string, len(oo))

	for _, o := range oo {
		k, v, found := strings.Cut(o, "=")
		if !found || k == "" {
			return locator.Config{}, fmt.Errorf("invalid option format: %q, expected key=value", o)
		}

		m[k] = v
	}

	return locator.NewConfig(m), nil
}
