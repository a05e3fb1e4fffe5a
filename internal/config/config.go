// Package config holds the application settings and the join-link format.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
)

const (
	AppID           = "io.localpaint.app"
	CustomURLScheme = "localpaint://"
	ServiceType     = "_localpaint._tcp"
)

const (
	prefShare      = "share.enabled"
	prefPort       = "share.port"
	prefCanvasW    = "canvas.width"
	prefCanvasH    = "canvas.height"
	prefIconSize   = "palette.iconSize"
	prefWindowName = "window.title"
)

var ErrBadLink = errors.New("bad join link")

type Config struct {
	Title        string
	CanvasWidth  int
	CanvasHeight int
	IconSize     int
	Share        bool
	Port         int
	ServiceType  string
}

func Default() Config {
	return Config{
		Title:        "Paint App",
		CanvasWidth:  600,
		CanvasHeight: 600,
		IconSize:     24,
		Share:        true,
		Port:         8888,
		ServiceType:  ServiceType,
	}
}

// Load overlays any stored preferences on the defaults.
func Load(p fyne.Preferences) Config {
	c := Default()
	c.Title = p.StringWithFallback(prefWindowName, c.Title)
	c.CanvasWidth = positive(p.IntWithFallback(prefCanvasW, c.CanvasWidth), c.CanvasWidth)
	c.CanvasHeight = positive(p.IntWithFallback(prefCanvasH, c.CanvasHeight), c.CanvasHeight)
	c.IconSize = positive(p.IntWithFallback(prefIconSize, c.IconSize), c.IconSize)
	c.Share = p.BoolWithFallback(prefShare, c.Share)
	c.Port = p.IntWithFallback(prefPort, c.Port)
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = Default().Port
	}
	return c
}

// Save writes the settings back so they can be edited between runs.
func (c Config) Save(p fyne.Preferences) {
	p.SetString(prefWindowName, c.Title)
	p.SetInt(prefCanvasW, c.CanvasWidth)
	p.SetInt(prefCanvasH, c.CanvasHeight)
	p.SetInt(prefIconSize, c.IconSize)
	p.SetBool(prefShare, c.Share)
	p.SetInt(prefPort, c.Port)
}

func positive(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// ShareLink returns the link a viewer passes on the command line.
func (c Config) ShareLink(host string) string {
	return CustomURLScheme + net.JoinHostPort(host, strconv.Itoa(c.Port))
}

// IsLink reports whether a command line argument is a join link.
func IsLink(arg string) bool {
	return strings.HasPrefix(arg, CustomURLScheme)
}

// ParseLink extracts host:port from a join link. An empty address means the
// viewer should look for a host on the local network.
func ParseLink(link string) (string, error) {
	if !IsLink(link) {
		return "", fmt.Errorf("%w: %q lacks %s", ErrBadLink, link, CustomURLScheme)
	}
	address := strings.TrimPrefix(link, CustomURLScheme)
	address = strings.TrimSuffix(address, "/")
	if address == "" {
		return "", nil
	}
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadLink, err)
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return "", fmt.Errorf("%w: port %q", ErrBadLink, port)
	}
	if host == "" {
		return "", fmt.Errorf("%w: missing host", ErrBadLink)
	}
	return address, nil
}
