package models

type CookieCategory string

const (
	CookieNecessary           CookieCategory = "necessary"
	CookieAnalytics           CookieCategory = "analytics"
	CookieMarketing           CookieCategory = "marketing"
	CookieCategoryPreferences CookieCategory = "preferences"
)

type CookiePreferences struct {
	Necessary   bool `json:"necessary"`
	Analytics   bool `json:"analytics"`
	Marketing   bool `json:"marketing"`
	Preferences bool `json:"preferences"`
}

func (p CookiePreferences) Allows(c CookieCategory) bool {
	switch c {
	case CookieNecessary:
		return true
	case CookieAnalytics:
		return p.Analytics
	case CookieMarketing:
		return p.Marketing
	case CookieCategoryPreferences:
		return p.Preferences
	}
	return false
}

type ConsentState struct {
	Consented   bool              `json:"consented"`
	Preferences CookiePreferences `json:"preferences"`
}
