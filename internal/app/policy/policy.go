// Package policy holds the heuristics applied to owner-submitted shop
// registrations. They are plain functions so they can be tuned and tested
// without a database.
package policy

import (
	"strings"
)

// mapsLinkMarkers are the substrings accepted as a Google Maps location link.
var mapsLinkMarkers = []string{"google.com/maps", "maps.app.goo.gl"}

// IsMapsLink reports whether link looks like a Google Maps location. Only a
// substring check is made; the link is never fetched.
func IsMapsLink(link string) bool {
	for _, marker := range mapsLinkMarkers {
		if strings.Contains(link, marker) {
			return true
		}
	}
	return false
}

// DuplicatePrefixLength is how much of the address is compared when looking
// for an existing listing.
const DuplicatePrefixLength = 5

// AddressPrefix returns the first DuplicatePrefixLength characters of the
// trimmed address.
func AddressPrefix(address string) string {
	runes := []rune(strings.TrimSpace(address))
	if len(runes) > DuplicatePrefixLength {
		runes = runes[:DuplicatePrefixLength]
	}
	return string(runes)
}

const (
	DefaultCity     = "Cagayan de Oro"
	DefaultProvince = "Misamis Oriental"
)

// Location is the city assigned to an approved shop.
type Location struct {
	City     string
	Province string
	Inferred bool // false when the default was used
}

type cityRule struct {
	keyword  string
	city     string
	province string
}

// cityRules is scanned in order; more specific names come before names they
// contain ("quezon city" before "manila" in "Quezon City, Metro Manila").
var cityRules = []cityRule{
	{keyword: "quezon city", city: "Quezon City", province: "Metro Manila"},
	{keyword: "makati", city: "Makati", province: "Metro Manila"},
	{keyword: "pasig", city: "Pasig", province: "Metro Manila"},
	{keyword: "taguig", city: "Taguig", province: "Metro Manila"},
	{keyword: "caloocan", city: "Caloocan", province: "Metro Manila"},
	{keyword: "cebu", city: "Cebu City", province: "Cebu"},
	{keyword: "davao", city: "Davao City", province: "Davao del Sur"},
	{keyword: "angeles", city: "Angeles City", province: "Pampanga"},
	{keyword: "antipolo", city: "Antipolo", province: "Rizal"},
	{keyword: "cagayan de oro", city: "Cagayan de Oro", province: "Misamis Oriental"},
	{keyword: "manila", city: "Manila", province: "Metro Manila"},
}

// InferCity guesses the city of a free-text address. Addresses that name no
// known city get DefaultCity.
func InferCity(address string) Location {
	lower := strings.ToLower(address)
	for _, rule := range cityRules {
		if strings.Contains(lower, rule.keyword) {
			return Location{City: rule.city, Province: rule.province, Inferred: true}
		}
	}
	return Location{City: DefaultCity, Province: DefaultProvince}
}

const (
	AdminHome   = "/admin"
	ProfileHome = "/profile"
)

// PostLoginRedirect honours a requested same-site path and otherwise sends
// administrators to the admin dashboard and everyone else to their profile.
func PostLoginRedirect(requested string, isAdmin bool) string {
	if strings.HasPrefix(requested, "/") && !strings.HasPrefix(requested, "//") && !strings.ContainsAny(requested, "\\\r\n") {
		return requested
	}
	if isAdmin {
		return AdminHome
	}
	return ProfileHome
}
