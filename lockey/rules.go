package lockey

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Rules holds the hand-curated lists the recognizers depend on. These were
// observed empirically from real catalogs and are deliberately configurable
// data, not derived behavior: a deployment facing a different catalog can
// ship its own lists without touching the parser.
type Rules struct {
	// Acronyms stay fully upper-case when title-casing words.
	Acronyms []string `toml:"acronyms"`

	// RoleSuffixes are the trailing segments that mark a version-tagged key
	// as a display string (matched after the semver segment).
	RoleSuffixes []string `toml:"role_suffixes"`

	// StripSuffixes are dropped from the end of constant-case keys before
	// the remaining words are title-cased. Longest-first order matters.
	StripSuffixes []string `toml:"strip_suffixes"`
}

// DefaultRules returns the built-in lists.
func DefaultRules() Rules {
	return Rules{
		Acronyms: []string{
			"URL", "URI", "HTML", "XML", "JSON", "API", "UI", "ID", "PDF", "CSS",
			"HTTP", "HTTPS", "FTP", "SSH", "DNS", "IP", "TCP", "UDP", "SQL", "SMS",
			"MMS", "GPS", "USB", "CPU", "GPU", "RAM", "ROM", "OS", "UTC", "GMT",
			"RGB", "RGBA", "MP3", "MP4", "PNG", "JPG", "JPEG", "GIF", "SVG", "CSV",
			"TSV", "ZIP", "TAR", "VPN", "LAN", "WAN", "NFC", "OCR", "AI", "ML",
			"AR", "VR", "XR",
		},
		RoleSuffixes: []string{
			"intent_title", "intent_description", "intent_name",
			"title", "description", "name", "summary",
		},
		StripSuffixes: []string{
			"_INTENT_TITLE", "_INTENT_DESCRIPTION", "_INTENT",
			"_TITLE", "_DESCRIPTION", "_NAME",
		},
	}
}

// LoadRules reads rules from a TOML file. Lists left empty in the file fall
// back to the defaults, so a config may override just one of them.
func LoadRules(path string) (Rules, error) {
	var rules Rules
	if _, err := toml.DecodeFile(path, &rules); err != nil {
		return Rules{}, fmt.Errorf("load rules %q: %w", path, err)
	}

	defaults := DefaultRules()
	if len(rules.Acronyms) == 0 {
		rules.Acronyms = defaults.Acronyms
	}
	if len(rules.RoleSuffixes) == 0 {
		rules.RoleSuffixes = defaults.RoleSuffixes
	}
	if len(rules.StripSuffixes) == 0 {
		rules.StripSuffixes = defaults.StripSuffixes
	}

	return rules, nil
}
