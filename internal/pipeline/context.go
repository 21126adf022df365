package pipeline

import (
	"github.com/AnyUserName/genkan/internal/config"
	"github.com/AnyUserName/genkan/internal/render"
)

// Rendering context keys.
const (
	KeyProfile  = "profile"
	KeyTheme    = "theme"
	KeyMeta     = "meta"
	KeyLinks    = "links"
	KeyDarkMode = "dark_mode"
	KeyBioHTML  = "bio_html"
	KeyCSS      = "css"
	KeyJS       = "js"
	KeyQRCode   = "qr_code_data"
)

// ProfileView is the profile as templates see it, with assets embedded.
// Empty strings mean "not set".
type ProfileView struct {
	Name                string
	Bio                 string
	Avatar              string
	AvatarDark          string
	Background          string
	BackgroundDark      string
	BackgroundImage     string
	BackgroundImageDark string
	SocialLinks         []SocialLinkView
}

type SocialLinkView struct {
	Icon  string
	URL   string
	Title string
}

type LinkView struct {
	Title       string
	URL         string
	Icon        string
	Description string
	LinkType    string
	Height      string
}

// MetaView carries page metadata. Favicon holds the embedded form, or is
// empty when the favicon was dropped.
type MetaView struct {
	Title       string
	Description string
	PageURL     string
	Favicon     string
	CustomCSS   string
	Analytics   string
	ShareTitle  string
	ShowFooter  bool
}

// views are the destinations asset slots write into.
type views struct {
	profile ProfileView
	links   []LinkView
	meta    MetaView
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// newViews copies the non-asset fields of cfg. Asset fields stay empty
// until their slot resolves.
func newViews(cfg *config.Config) *views {
	v := &views{
		profile: ProfileView{
			Name:           cfg.Profile.Name,
			Bio:            cfg.Profile.Bio,
			Background:     str(cfg.Profile.Light.Background),
			BackgroundDark: str(cfg.Profile.Dark.Background),
			SocialLinks:    make([]SocialLinkView, len(cfg.Profile.SocialLinks)),
		},
		links: make([]LinkView, len(cfg.Links)),
		meta: MetaView{
			Title:       cfg.Meta.Title,
			Description: cfg.Meta.Description,
			PageURL:     str(cfg.Meta.PageURL),
			CustomCSS:   str(cfg.Meta.CustomCSS),
			Analytics:   str(cfg.Meta.Analytics),
			ShareTitle:  str(cfg.Meta.ShareTitle),
			ShowFooter:  cfg.Meta.ShowFooter,
		},
	}
	if v.meta.Title == "" {
		v.meta.Title = cfg.Profile.Name
	}
	for i, s := range cfg.Profile.SocialLinks {
		v.profile.SocialLinks[i] = SocialLinkView{URL: s.URL, Title: str(s.Title)}
	}
	for i, l := range cfg.Links {
		v.links[i] = LinkView{
			Title:       str(l.Title),
			URL:         str(l.URL),
			Description: str(l.Description),
			LinkType:    l.LinkType,
			Height:      str(l.Height),
		}
	}
	return v
}

// cssContext holds the values the stylesheet pass sees.
func cssContext(v *views, th config.Theme, typo map[config.Role]config.ResolvedTypography) render.Context {
	ctx := render.Context{
		KeyProfile: v.profile,
		KeyTheme:   th,
	}
	for role, t := range typo {
		ctx[render.TypographyKey(role)] = t
	}
	return ctx
}
