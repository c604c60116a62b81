package speech

import (
	"regexp"
	"strings"
)

// VoicePrefs lists well-sounding voice names per engine, tried in order
// before falling back to heuristics.
var VoicePrefs = map[string][]string{
	"say":       {"Samantha", "Alex", "Victoria"},
	"espeak-ng": {"English (America)", "English_(America)", "en-us"},
	"espeak":    {"english-us", "en-us"},
	"browser": {
		"Google US English",
		"Microsoft Christopher Online (Natural) - English (United States)",
		"Microsoft Aria Online (Natural) - English (United States)",
		"Samantha",
	},
	"default": {"Google US English", "Samantha"},
}

var (
	googleRe    = regexp.MustCompile(`(?i)google`)
	microsoftRe = regexp.MustCompile(`(?i)microsoft`)
)

// ChooseVoice picks the best voice for lang.
//
// A preferred name wins when installed, matched exactly and then as a
// prefix. Next come the engine preference list and the default list.
// Otherwise the first English Google voice, the first English Microsoft
// voice, the first voice for lang, the first English voice and finally the
// first voice are tried in that order. It returns false for an empty list.
func ChooseVoice(voices []Voice, engine, lang, preferred string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	if preferred != "" {
		for _, v := range voices {
			if v.Name == preferred {
				return v, true
			}
		}
		for _, v := range voices {
			if strings.HasPrefix(v.Name, preferred) {
				return v, true
			}
		}
	}

	prefs := append(append([]string(nil), VoicePrefs[engine]...), VoicePrefs["default"]...)
	for _, name := range prefs {
		for _, v := range voices {
			if v.Name == name {
				return v, true
			}
		}
	}

	isEnglish := func(v Voice) bool { return strings.HasPrefix(strings.ToLower(v.Lang), "en") }
	checks := []func(Voice) bool{
		func(v Voice) bool { return googleRe.MatchString(v.Name) && isEnglish(v) },
		func(v Voice) bool { return microsoftRe.MatchString(v.Name) && isEnglish(v) },
		func(v Voice) bool { return sameLang(v.Lang, lang) },
		isEnglish,
	}
	for _, ok := range checks {
		for _, v := range voices {
			if ok(v) {
				return v, true
			}
		}
	}
	return voices[0], true
}

// sameLang compares language tags, treating "_" and "-" alike.
func sameLang(a, b string) bool {
	norm := func(s string) string { return strings.ToLower(strings.ReplaceAll(s, "_", "-")) }
	return a != "" && norm(a) == norm(b)
}
