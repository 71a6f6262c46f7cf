package player

import "strings"

const (
	DefaultAssetsDir = "img"
	DefaultAvatar    = "img/default.png"
)

// ImagePaths resolves bare image file names against the assets directory.
type ImagePaths struct {
	AssetsDir     string
	DefaultAvatar string
}

func DefaultImagePaths() ImagePaths {
	return ImagePaths{
		AssetsDir:     DefaultAssetsDir,
		DefaultAvatar: DefaultAvatar,
	}
}

// Normalize returns "" for an empty reference, the reference itself when it already
// carries a path separator, and "<assets>/<ref>" otherwise.
func (p ImagePaths) Normalize(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "/") {
		return ref
	}

	dir := strings.TrimRight(strings.TrimSpace(p.AssetsDir), "/")
	if dir == "" {
		dir = DefaultAssetsDir
	}
	return dir + "/" + ref
}

// Avatar resolves the player's avatar, falling back to the placeholder image.
func (p ImagePaths) Avatar(item Player, found bool) string {
	fallback := strings.TrimSpace(p.DefaultAvatar)
	if fallback == "" {
		fallback = DefaultAvatar
	}
	if !found {
		return fallback
	}
	if path := p.Normalize(item.Avatar); path != "" {
		return path
	}
	return fallback
}

// CharacterIcons resolves up to two character icons, skipping empty references.
func (p ImagePaths) CharacterIcons(item Player) []string {
	refs := item.Characters()
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if path := p.Normalize(ref); path != "" {
			out = append(out, path)
		}
	}
	return out
}
