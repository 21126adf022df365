// Package config defines the site configuration and loads it from TOML or
// YAML files.
package config

import (
	"fmt"

	"github.com/AnyUserName/genkan/internal/profile"
)

// Config is the root of a site description.
type Config struct {
	Profile  Profile       `toml:"profile" yaml:"profile"`
	Theme    Theme         `toml:"theme" yaml:"theme"`
	Meta     Meta          `toml:"meta" yaml:"meta"`
	Links    []Link        `toml:"links" yaml:"links"`
	DarkMode DarkMode      `toml:"dark_mode" yaml:"dark_mode"`
	Image    ImageSettings `toml:"image" yaml:"image"`

	// Unknown lists keys present in the file that no field consumed.
	Unknown []string `toml:"-" yaml:"-"`
}

type Profile struct {
	Name        string        `toml:"name" yaml:"name"`
	Bio         string        `toml:"bio" yaml:"bio"`
	SocialLinks []SocialLink  `toml:"social_links" yaml:"social_links"`
	Light       ProfileAssets `toml:"light" yaml:"light"`
	Dark        ProfileAssets `toml:"dark" yaml:"dark"`
}

// ProfileAssets holds the per-color-scheme images of a profile.
type ProfileAssets struct {
	Avatar          string  `toml:"avatar" yaml:"avatar"`
	Background      *string `toml:"background" yaml:"background"`
	BackgroundImage *string `toml:"background_image" yaml:"background_image"`
}

type SocialLink struct {
	Icon  string  `toml:"icon" yaml:"icon"`
	URL   string  `toml:"url" yaml:"url"`
	Title *string `toml:"title" yaml:"title"`
}

type Theme struct {
	Name        string      `toml:"name" yaml:"name"`
	ButtonStyle string      `toml:"button_style" yaml:"button_style"`
	FontFamily  string      `toml:"font_family" yaml:"font_family"`
	LinkSpacing string      `toml:"link_spacing" yaml:"link_spacing"`
	Typography  Typography  `toml:"typography" yaml:"typography"`
	Light       ThemeColors `toml:"light" yaml:"light"`
	Dark        ThemeColors `toml:"dark" yaml:"dark"`
}

// ThemeColors is the legacy flat color palette. Text colors here act as
// fallbacks in the typography cascade.
type ThemeColors struct {
	PrimaryColor         string `toml:"primary_color" yaml:"primary_color"`
	SecondaryColor       string `toml:"secondary_color" yaml:"secondary_color"`
	BackgroundColor      string `toml:"background_color" yaml:"background_color"`
	HeaderColor          string `toml:"header_color" yaml:"header_color"`
	BioColor             string `toml:"bio_color" yaml:"bio_color"`
	LinkTitleColor       string `toml:"link_title_color" yaml:"link_title_color"`
	LinkDescriptionColor string `toml:"link_description_color" yaml:"link_description_color"`
	FooterColor          string `toml:"footer_color" yaml:"footer_color"`
}

type Meta struct {
	Title       string  `toml:"title" yaml:"title"`
	Description string  `toml:"description" yaml:"description"`
	PageURL     *string `toml:"page_url" yaml:"page_url"`
	Favicon     *string `toml:"favicon" yaml:"favicon"`
	CustomCSS   *string `toml:"custom_css" yaml:"custom_css"`
	Analytics   *string `toml:"analytics" yaml:"analytics"`
	ShowFooter  bool    `toml:"show_footer" yaml:"show_footer"`
	ShareTitle  *string `toml:"share_title" yaml:"share_title"`
}

// Link is one entry of the link list. Block links are buttons; space links
// only add vertical room.
type Link struct {
	Title       *string `toml:"title" yaml:"title"`
	URL         *string `toml:"url" yaml:"url"`
	Icon        *string `toml:"icon" yaml:"icon"`
	Description *string `toml:"description" yaml:"description"`
	LinkType    string  `toml:"link_type" yaml:"link_type"`
	Height      *string `toml:"height" yaml:"height"`
}

// Link types.
const (
	LinkBlock = "block"
	LinkSpace = "space"
)

type DarkMode struct {
	Mode string `toml:"mode" yaml:"mode"`
}

// Dark mode settings.
var darkModes = []string{"auto", "light", "dark", "disable"}

// ImageSettings sets the resize target per asset slot. Zero keeps the
// preset value, a negative value disables resizing for that slot.
type ImageSettings struct {
	Preset         string `toml:"preset" yaml:"preset"`
	AvatarSize     int    `toml:"avatar_size" yaml:"avatar_size"`
	SocialIconSize int    `toml:"social_icon_size" yaml:"social_icon_size"`
	LinkIconSize   int    `toml:"link_icon_size" yaml:"link_icon_size"`
	FaviconSize    int    `toml:"favicon_size" yaml:"favicon_size"`
}

// Targets returns the effective resize targets, 0 meaning "do not resize".
func (s ImageSettings) Targets() profile.Profile {
	p := profile.Get(s.Preset)
	p.Avatar = profile.Override(s.AvatarSize, p.Avatar)
	p.SocialIcon = profile.Override(s.SocialIconSize, p.SocialIcon)
	p.LinkIcon = profile.Override(s.LinkIconSize, p.LinkIcon)
	p.Favicon = profile.Override(s.FaviconSize, p.Favicon)
	return p
}

// Identifier is the human-facing name of link idx in messages.
func (l Link) Identifier(idx int) string {
	if l.Title != nil && *l.Title != "" {
		return *l.Title
	}
	return fmt.Sprintf("index %d", idx)
}

// Subject names link idx in diagnostics: links["GitHub"] or links[index 3].
func (l Link) Subject(idx int) string {
	if l.Title != nil && *l.Title != "" {
		return fmt.Sprintf("links[%q]", *l.Title)
	}
	return fmt.Sprintf("links[index %d]", idx)
}

// Default returns a Config populated with every default value. Files are
// decoded on top of it, so omitted keys keep these values.
func Default() *Config {
	return &Config{
		Theme: Theme{
			Name:        "simple",
			ButtonStyle: "rounded",
			FontFamily:  DefaultFont,
			LinkSpacing: "24px",
			Typography:  DefaultTypography(),
			Light: ThemeColors{
				PrimaryColor:         "#000000",
				SecondaryColor:       "#000000",
				BackgroundColor:      "#ffffff",
				HeaderColor:          "#000000",
				BioColor:             "rgba(0, 0, 0, 0.7)",
				LinkTitleColor:       "#000000",
				LinkDescriptionColor: "rgba(0, 0, 0, 0.6)",
				FooterColor:          "rgba(0, 0, 0, 0.5)",
			},
			Dark: ThemeColors{
				PrimaryColor:         "#ffffff",
				SecondaryColor:       "#ffffff",
				BackgroundColor:      "#121212",
				HeaderColor:          "#ffffff",
				BioColor:             "rgba(255, 255, 255, 0.7)",
				LinkTitleColor:       "#ffffff",
				LinkDescriptionColor: "rgba(255, 255, 255, 0.6)",
				FooterColor:          "rgba(255, 255, 255, 0.5)",
			},
		},
		Meta:     Meta{ShowFooter: true},
		DarkMode: DarkMode{Mode: "disable"},
		Image:    ImageSettings{Preset: profile.Default},
	}
}
