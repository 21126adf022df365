package pipeline

import (
	"fmt"

	"github.com/AnyUserName/genkan/internal/asset"
	"github.com/AnyUserName/genkan/internal/config"
	"github.com/AnyUserName/genkan/internal/profile"
)

// slot is one asset reference found in the configuration together with the
// view field its embedded value lands in.
type slot struct {
	Request asset.Request
	set     func(string)
}

// scanAssets walks the configuration in page order and returns every asset
// slot, bound to fields of v. Slots never share a destination.
func scanAssets(cfg *config.Config, targets profile.Profile, v *views) []slot {
	var slots []slot
	add := func(subject string, ref *string, target int, mode asset.Mode, dst *string) {
		if ref == nil || *ref == "" {
			return
		}
		slots = append(slots, slot{
			Request: asset.Request{Subject: subject, Ref: *ref, Target: target, Mode: mode},
			set:     func(s string) { *dst = s },
		})
	}

	p := &cfg.Profile
	add("profile.light.avatar", &p.Light.Avatar, targets.Avatar, asset.Icon, &v.profile.Avatar)
	add("profile.dark.avatar", &p.Dark.Avatar, targets.Avatar, asset.Icon, &v.profile.AvatarDark)
	add("profile.light.background_image", p.Light.BackgroundImage, 0, asset.Icon, &v.profile.BackgroundImage)
	add("profile.dark.background_image", p.Dark.BackgroundImage, 0, asset.Icon, &v.profile.BackgroundImageDark)

	for i := range p.SocialLinks {
		add(fmt.Sprintf("profile.social_links[%d].icon", i), &p.SocialLinks[i].Icon,
			targets.SocialIcon, asset.Icon, &v.profile.SocialLinks[i].Icon)
	}
	for i := range cfg.Links {
		add(cfg.Links[i].Subject(i)+".icon", cfg.Links[i].Icon,
			targets.LinkIcon, asset.Icon, &v.links[i].Icon)
	}

	add("meta.favicon", cfg.Meta.Favicon, targets.Favicon, asset.Favicon, &v.meta.Favicon)
	return slots
}
