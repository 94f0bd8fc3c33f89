package sanitizer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reNonTagChars     = regexp.MustCompile(`[^a-z0-9]+`)
	reTrimUnderscores = regexp.MustCompile(`_+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func collapseUnderscores(s string) string {
	s = reTrimUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// NormalizeSearch prepares free text for fuzzy matching: "  Kōramangala " becomes "koramangala".
func NormalizeSearch(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		unidecode.Unidecode,
		strings.ToLower,
		TrimAndNormalize,
	}
	return p.Apply(input)
}

// SanitizeTag turns a label into a tag identifier: "Power Backup" becomes "power_backup".
func SanitizeTag(input string) string {
	p := Pipeline{
		trimAndLower,
		unidecode.Unidecode,
		func(s string) string { return reNonTagChars.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	return p.Apply(input)
}

func SanitizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	lowered := strings.ToLower(s)
	if strings.HasPrefix(lowered, "http://") {
		s = "https://" + s[len("http://"):]
	} else if !strings.HasPrefix(lowered, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = "https"
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")

	q := u.Query()
	clean := url.Values{}
	for k, v := range q {
		if strings.HasPrefix(strings.ToLower(k), "utm_") {
			continue
		}
		for _, val := range v {
			if val = strings.TrimSpace(val); val != "" {
				clean.Add(k, val)
			}
		}
	}
	u.RawQuery = clean.Encode()

	return u.String()
}
