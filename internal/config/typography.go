package config

// Built-in fallbacks, shared by every role.
const (
	DefaultFont   = "system-ui, -apple-system, sans-serif"
	DefaultSize   = "16px"
	DefaultWeight = "normal"
	DefaultStyle  = "normal"
	DefaultColor  = "#000000"
)

// Role names a styled text element of the page.
type Role string

const (
	RoleHeader          Role = "header"
	RoleBio             Role = "bio"
	RoleLinkTitle       Role = "link_title"
	RoleLinkDescription Role = "link_description"
	RoleFooter          Role = "footer"
)

// Roles lists every role in rendering order.
var Roles = []Role{RoleHeader, RoleBio, RoleLinkTitle, RoleLinkDescription, RoleFooter}

// TypographyStyle holds optional overrides for one role. Nil means unset.
type TypographyStyle struct {
	Size      *string `toml:"size" yaml:"size"`
	Font      *string `toml:"font" yaml:"font"`
	Weight    *string `toml:"weight" yaml:"weight"`
	Style     *string `toml:"style" yaml:"style"`
	Color     *string `toml:"color" yaml:"color"`
	ColorDark *string `toml:"color_dark" yaml:"color_dark"`
}

// Typography holds the global default and the per-role overrides.
type Typography struct {
	Default         TypographyStyle `toml:"default" yaml:"default"`
	Header          TypographyStyle `toml:"header" yaml:"header"`
	Bio             TypographyStyle `toml:"bio" yaml:"bio"`
	LinkTitle       TypographyStyle `toml:"link_title" yaml:"link_title"`
	LinkDescription TypographyStyle `toml:"link_description" yaml:"link_description"`
	Footer          TypographyStyle `toml:"footer" yaml:"footer"`
}

// ResolvedTypography has every field set. ColorDark stays nil when no
// layer supplied one, meaning dark mode keeps the light color.
type ResolvedTypography struct {
	Size      string
	Font      string
	Weight    string
	Style     string
	Color     string
	ColorDark *string
}

// BaseTypography holds only the global default block.
func BaseTypography() Typography {
	return Typography{
		Default: TypographyStyle{
			Size:   ptr(DefaultSize),
			Font:   ptr(DefaultFont),
			Weight: ptr(DefaultWeight),
			Style:  ptr(DefaultStyle),
			Color:  ptr(DefaultColor),
		},
	}
}

// DefaultTypography seeds sizes and weights per role for configs without a
// typography table. Colors are left unset so the theme palette can supply
// them.
func DefaultTypography() Typography {
	t := BaseTypography()
	t.Header = TypographyStyle{Size: ptr("2rem"), Weight: ptr("700")}
	t.Bio = TypographyStyle{Size: ptr("1.1rem")}
	t.LinkTitle = TypographyStyle{Size: ptr("1.1rem"), Weight: ptr("600")}
	t.LinkDescription = TypographyStyle{Size: ptr("0.9rem")}
	t.Footer = TypographyStyle{Size: ptr("0.8rem")}
	return t
}

// Style returns the override block for role.
func (t Typography) Style(role Role) TypographyStyle {
	switch role {
	case RoleHeader:
		return t.Header
	case RoleBio:
		return t.Bio
	case RoleLinkTitle:
		return t.LinkTitle
	case RoleLinkDescription:
		return t.LinkDescription
	case RoleFooter:
		return t.Footer
	default:
		return TypographyStyle{}
	}
}

// Resolve cascades, first present value wins:
//
//	size, font, weight, style: role, global default, built-in
//	color:                     role, legacyColor, global default, built-in
//	color_dark:                role, legacyColorDark, global default, absent
func (t Typography) Resolve(role TypographyStyle, legacyColor, legacyColorDark *string) ResolvedTypography {
	d := t.Default
	return ResolvedTypography{
		Size:      first(DefaultSize, role.Size, d.Size),
		Font:      first(DefaultFont, role.Font, d.Font),
		Weight:    first(DefaultWeight, role.Weight, d.Weight),
		Style:     first(DefaultStyle, role.Style, d.Style),
		Color:     first(DefaultColor, role.Color, legacyColor, d.Color),
		ColorDark: firstPtr(role.ColorDark, legacyColorDark, d.ColorDark),
	}
}

// ResolveRole resolves role with the legacy palette colors of theme.
func (th Theme) ResolveRole(role Role) ResolvedTypography {
	return th.Typography.Resolve(
		th.Typography.Style(role),
		Optional(th.Light.roleColor(role)),
		Optional(th.Dark.roleColor(role)),
	)
}

func (c ThemeColors) roleColor(role Role) string {
	switch role {
	case RoleHeader:
		return c.HeaderColor
	case RoleBio:
		return c.BioColor
	case RoleLinkTitle:
		return c.LinkTitleColor
	case RoleLinkDescription:
		return c.LinkDescriptionColor
	case RoleFooter:
		return c.FooterColor
	default:
		return ""
	}
}

// Optional returns nil for the empty string.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ptr(s string) *string { return &s }

func first(fallback string, candidates ...*string) string {
	if p := firstPtr(candidates...); p != nil {
		return *p
	}
	return fallback
}

func firstPtr(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
