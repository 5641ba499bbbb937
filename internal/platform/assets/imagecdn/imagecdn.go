// Package imagecdn builds image URLs served by a flat CDN layout of
// {base}/{type}/{id}/{icon}.png.
package imagecdn

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Image types understood by the Discord CDN.
const (
	TypeIcons   = "icons"
	TypeAvatars = "avatars"
)

// DefaultBaseURL is Discord's public CDN.
var DefaultBaseURL = strings.TrimRight(discordgo.EndpointCDN, "/")

// ErrIncomplete is returned when a URL part is missing.
var ErrIncomplete = errors.New("image type, id and icon are required")

// CDN resolves icon URLs against one base URL.
type CDN struct {
	baseURL string
}

// New returns a CDN rooted at baseURL, or at DefaultBaseURL when blank.
func New(baseURL string) CDN {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return CDN{baseURL: baseURL}
}

// BaseURL returns the configured base.
func (c CDN) BaseURL() string {
	if c.baseURL == "" {
		return DefaultBaseURL
	}
	return c.baseURL
}

// URL returns {base}/{type}/{id}/{icon}.png.
func (c CDN) URL(imageType, id, icon string) (string, error) {
	imageType = strings.TrimSpace(imageType)
	id = strings.TrimSpace(id)
	icon = strings.TrimSpace(icon)
	if imageType == "" || id == "" || icon == "" {
		return "", ErrIncomplete
	}
	return c.BaseURL() + "/" + imageType + "/" + id + "/" + icon + ".png", nil
}

// IconURL reports the URL and whether every part was present.
func (c CDN) IconURL(imageType, id, icon string) (string, bool) {
	url, err := c.URL(imageType, id, icon)
	return url, err == nil
}

// IconURL resolves against DefaultBaseURL.
func IconURL(imageType, id, icon string) (string, bool) {
	return New("").IconURL(imageType, id, icon)
}
