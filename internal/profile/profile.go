package profile

// Profile defines the maximum pixel dimension for each asset slot.
type Profile struct {
	Name       string
	Avatar     int
	SocialIcon int
	LinkIcon   int
	Favicon    int
}

// Default is the preset used when none is named.
const Default = "default"

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:       "default",
		Avatar:     512,
		SocialIcon: 128,
		LinkIcon:   128,
		Favicon:    64,
	},
	"compact": {
		Name:       "compact",
		Avatar:     256,
		SocialIcon: 64,
		LinkIcon:   64,
		Favicon:    32,
	},
	"retina": {
		Name:       "retina",
		Avatar:     1024,
		SocialIcon: 256,
		LinkIcon:   256,
		Favicon:    128,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[Default]
	if name != "" {
		p.Name = name // preserve requested name
	}
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Override returns the effective target for a slot: a positive configured
// value wins, a negative one disables resizing (0), and 0 keeps the preset.
func Override(configured, preset int) int {
	switch {
	case configured > 0:
		return configured
	case configured < 0:
		return 0
	default:
		return preset
	}
}
