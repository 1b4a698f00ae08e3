// SPDX-License-Identifier: MPL-2.0

// Package sample is a small demonstration bundle exporting one command of
// each kind under the Net group.
package sample

import (
	"strings"

	"github.com/capreg/capreg/pkg/bundle"
	"github.com/capreg/capreg/pkg/command"
)

const (
	DefaultPort = 8080
	DefaultHost = "localhost"
)

// Net is the state the sample bundle exposes.
type Net struct {
	Port int
	host string
}

// NewNet returns a Net with default settings.
func NewNet() *Net {
	return &Net{Port: DefaultPort, host: DefaultHost}
}

// Host returns the current host name.
func (n *Net) Host() string { return n.host }

// SetHost changes the host name.
func (n *Net) SetHost(h string) { n.host = h }

// Reset restores the defaults. Port is written directly, so a bound
// Net/Port field reports the old value until it is refreshed.
func (n *Net) Reset() {
	n.Port = DefaultPort
	n.host = DefaultHost
}

// Bundle exports n:
//   - Net/Online: raw marker
//   - Net/Reset: button calling Reset
//   - Net/Port: field, 1..65535
//   - Net/Host: property, non-blank
func Bundle(n *Net) bundle.Bundle {
	return bundle.New("sample").Add(
		bundle.Raw("Net", "Online"),
		bundle.Button("Net", "Reset", n.Reset),
		bundle.Field("Net", "Port", &n.Port, command.Between(1, 65535)),
		bundle.Property("Net", "Host", n.Host, n.SetHost, func(h string) bool {
			return strings.TrimSpace(h) != ""
		}),
	)
}
