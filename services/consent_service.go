package services

import (
	"encoding/json"
	"time"

	"github.com/tebele-dev/tailor-made-couture/models"
	"go.uber.org/zap"
)

const (
	ConsentCookie     = "tmc_cookie_consent"
	PreferencesCookie = "tmc_cookie_preferences"
	ConsentMaxAge     = 365 * 24 * time.Hour
)

// CookieJar reads and writes browser cookies for a single request.
type CookieJar interface {
	Get(name string) (string, bool)
	Set(name, value string)
}

type ConsentService interface {
	HasConsented(jar CookieJar) bool
	Preferences(jar CookieJar) models.CookiePreferences
	State(jar CookieJar) models.ConsentState
	Save(jar CookieJar, prefs models.CookiePreferences) models.ConsentState
	AcceptAll(jar CookieJar) models.ConsentState
	AcceptNecessary(jar CookieJar) models.ConsentState
	IsCategoryAllowed(jar CookieJar, category models.CookieCategory) bool
}

type consentServiceImpl struct {
	logger *zap.Logger
}

func NewConsentService(logger *zap.Logger) ConsentService {
	return &consentServiceImpl{logger: logger}
}

func defaultPreferences() models.CookiePreferences {
	return models.CookiePreferences{Necessary: true}
}

func (s *consentServiceImpl) HasConsented(jar CookieJar) bool {
	v, ok := jar.Get(ConsentCookie)
	return ok && v == "true"
}

// Preferences merges the stored blob over the necessary-only default.
func (s *consentServiceImpl) Preferences(jar CookieJar) models.CookiePreferences {
	prefs := defaultPreferences()
	raw, ok := jar.Get(PreferencesCookie)
	if !ok || raw == "" {
		return prefs
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn("Malformed cookie preferences", zap.Error(err))
		return defaultPreferences()
	}
	prefs.Necessary = true
	return prefs
}

func (s *consentServiceImpl) State(jar CookieJar) models.ConsentState {
	return models.ConsentState{
		Consented:   s.HasConsented(jar),
		Preferences: s.Preferences(jar),
	}
}

func (s *consentServiceImpl) Save(jar CookieJar, prefs models.CookiePreferences) models.ConsentState {
	prefs.Necessary = true
	data, err := json.Marshal(prefs)
	if err != nil {
		s.logger.Error("Failed to encode cookie preferences", zap.Error(err))
		return s.State(jar)
	}
	jar.Set(ConsentCookie, "true")
	jar.Set(PreferencesCookie, string(data))
	return models.ConsentState{Consented: true, Preferences: prefs}
}

func (s *consentServiceImpl) AcceptAll(jar CookieJar) models.ConsentState {
	return s.Save(jar, models.CookiePreferences{
		Necessary:   true,
		Analytics:   true,
		Marketing:   true,
		Preferences: true,
	})
}

func (s *consentServiceImpl) AcceptNecessary(jar CookieJar) models.ConsentState {
	return s.Save(jar, defaultPreferences())
}

func (s *consentServiceImpl) IsCategoryAllowed(jar CookieJar, category models.CookieCategory) bool {
	if category == models.CookieNecessary {
		return true
	}
	if !s.HasConsented(jar) {
		return false
	}
	return s.Preferences(jar).Allows(category)
}
