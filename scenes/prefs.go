package scenes

import (
	"github.com/goccy/go-json"
	"github.com/quasilyte/gdata"
	"github.com/rs/zerolog"
)

const prefsKey = "prefs"

// Prefs are the toggles remembered between sessions.
type Prefs struct {
	Debug bool `json:"debug"`
	Muted bool `json:"muted"`
}

// prefsStore saves Prefs through gdata. When storage is unavailable it
// keeps working in memory only.
type prefsStore struct {
	manager *gdata.Manager
	logger  zerolog.Logger
}

func openPrefs(appName string, logger zerolog.Logger) *prefsStore {
	s := &prefsStore{logger: logger}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn().Err(err).Msg("preferences will not be saved")
		return s
	}
	s.manager = m
	return s
}

func (s *prefsStore) load() Prefs {
	var p Prefs
	if s.manager == nil {
		return p
	}
	data, err := s.manager.LoadItem(prefsKey)
	if err != nil || data == nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn().Err(err).Msg("ignoring unreadable preferences")
		return Prefs{}
	}
	return p
}

func (s *prefsStore) save(p Prefs) {
	if s.manager == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not encode preferences")
		return
	}
	if err := s.manager.SaveItem(prefsKey, data); err != nil {
		s.logger.Warn().Err(err).Msg("could not save preferences")
	}
}
