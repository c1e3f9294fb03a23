// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dns points host names at preview servers.
package dns

import (
	"errors"
	"net"
	"strings"
)

var ErrHost = errors.New("invalid host label")

type DNS interface {
	// UpdateRoute points host (a single label under the zone's domain) at
	// address.
	UpdateRoute(host string, address net.IP) error
}

// RecordName joins host and domain, checking host is one DNS label.
func RecordName(host, domain string) (string, error) {
	if host == "" || len(host) > 63 || strings.ContainsAny(host, ". ") {
		return "", ErrHost
	}
	return host + "." + strings.TrimSuffix(domain, "."), nil
}
