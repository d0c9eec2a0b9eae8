// Package payload turns typed user input into the literal strings that QR
// scanners recognise: plain text, URLs, vCards, Wi-Fi join strings and map
// links.
package payload

import (
	"fmt"
	"strings"
)

// Kind names a record variant as it appears on forms and CLI flags.
type Kind string

const (
	KindText     Kind = "text"
	KindURL      Kind = "url"
	KindContact  Kind = "contact"
	KindWiFi     Kind = "wifi"
	KindLocation Kind = "location"
)

// Kinds lists every supported variant in display order.
var Kinds = []Kind{KindText, KindURL, KindContact, KindWiFi, KindLocation}

// AuthMode is the Wi-Fi security type printed after "T:".
type AuthMode string

const (
	AuthWPA  AuthMode = "WPA"
	AuthWEP  AuthMode = "WEP"
	AuthNone AuthMode = "None"
)

// ParseAuthMode accepts WPA, WEP or None (case-insensitive). An empty string
// means WPA.
func ParseAuthMode(s string) (AuthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wpa":
		return AuthWPA, nil
	case "wep":
		return AuthWEP, nil
	case "none", "nopass":
		return AuthNone, nil
	}
	return "", fmt.Errorf("unknown wifi auth mode %q", s)
}

// Record is one of Text, URL, Contact, WiFi or Location. Pointers to those
// types are accepted too and behave like the value they point to; a nil
// pointer is treated like a nil Record.
type Record interface {
	Kind() Kind
	isRecord()
}

// Text is free-form text, encoded verbatim.
type Text struct {
	Value string
}

// URL is a link, encoded verbatim.
type URL struct {
	Value string
}

// Contact is encoded as a vCard 3.0.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// WiFi is encoded in the WIFI: join-network convention.
type WiFi struct {
	SSID     string
	Password string
	Auth     AuthMode
}

// Location is encoded as a Google Maps query link.
type Location struct {
	Latitude  string
	Longitude string
}

func (Text) Kind() Kind     { return KindText }
func (URL) Kind() Kind      { return KindURL }
func (Contact) Kind() Kind  { return KindContact }
func (WiFi) Kind() Kind     { return KindWiFi }
func (Location) Kind() Kind { return KindLocation }

func (Text) isRecord()     {}
func (URL) isRecord()      {}
func (Contact) isRecord()  {}
func (WiFi) isRecord()     {}
func (Location) isRecord() {}

// Format returns the payload string for r exactly as scanners expect it.
// Field values are inserted verbatim. A nil record formats to "".
func Format(r Record) string {
	return format(r, verbatim, verbatim)
}

// FormatEscaped is Format with field escaping applied: RFC 6350 rules for
// vCard values and the backslash convention for Wi-Fi SSID and password.
func FormatEscaped(r Record) string {
	return format(r, escapeVCard, escapeWiFi)
}

func format(r Record, vcard, wifi func(string) string) string {
	switch v := deref(r).(type) {
	case Text:
		return v.Value
	case URL:
		return v.Value
	case Contact:
		return "BEGIN:VCARD\n" +
			"VERSION:3.0\n" +
			"N:" + vcard(v.Name) + "\n" +
			"TEL:" + vcard(v.Phone) + "\n" +
			"EMAIL:" + vcard(v.Email) + "\n" +
			"ADR:" + vcard(v.Address) + "\n" +
			"END:VCARD"
	case WiFi:
		auth := v.Auth
		if auth == "" {
			auth = AuthWPA
		}
		return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;;", auth, wifi(v.SSID), wifi(v.Password))
	case Location:
		return fmt.Sprintf("https://maps.google.com/?q=%s,%s", v.Latitude, v.Longitude)
	}
	return ""
}

// Empty reports whether r carries no user data: nil, or every field that
// ends up in the payload is blank.
func Empty(r Record) bool {
	switch v := deref(r).(type) {
	case Text:
		return v.Value == ""
	case URL:
		return v.Value == ""
	case Contact:
		return v.Name == "" && v.Phone == "" && v.Email == "" && v.Address == ""
	case WiFi:
		return v.SSID == "" && v.Password == ""
	case Location:
		return v.Latitude == "" && v.Longitude == ""
	}
	return true
}

// deref unwraps pointer records so the formatters only switch on values.
func deref(r Record) Record {
	switch v := r.(type) {
	case *Text:
		if v != nil {
			return *v
		}
	case *URL:
		if v != nil {
			return *v
		}
	case *Contact:
		if v != nil {
			return *v
		}
	case *WiFi:
		if v != nil {
			return *v
		}
	case *Location:
		if v != nil {
			return *v
		}
	default:
		return r
	}
	return nil
}

func verbatim(s string) string { return s }

var (
	vcardEscaper = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `;`, `\;`, "\r\n", `\n`, "\n", `\n`)
	wifiEscaper  = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)
)

func escapeVCard(s string) string { return vcardEscaper.Replace(s) }

func escapeWiFi(s string) string { return wifiEscaper.Replace(s) }
