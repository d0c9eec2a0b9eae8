package payload

import (
	"fmt"
	"strings"
)

// Field names shared by the HTML form, the JSON API and the CLI flags.
const (
	FieldText      = "text"
	FieldURL       = "url"
	FieldName      = "name"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldAddress   = "address"
	FieldSSID      = "ssid"
	FieldPassword  = "password"
	FieldAuth      = "auth"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
)

// FromFields builds a Record of the given kind from flat string fields.
// An empty kind means nothing was selected and returns a nil Record.
// Missing fields are treated as empty strings.
func FromFields(kind string, fields map[string]string) (Record, error) {
	get := func(key string) string { return fields[key] }

	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case "":
		return nil, nil
	case KindText:
		return Text{Value: get(FieldText)}, nil
	case KindURL:
		return URL{Value: get(FieldURL)}, nil
	case KindContact:
		return Contact{
			Name:    get(FieldName),
			Phone:   get(FieldPhone),
			Email:   get(FieldEmail),
			Address: get(FieldAddress),
		}, nil
	case KindWiFi:
		auth, err := ParseAuthMode(get(FieldAuth))
		if err != nil {
			return nil, err
		}
		return WiFi{SSID: get(FieldSSID), Password: get(FieldPassword), Auth: auth}, nil
	case KindLocation:
		return Location{Latitude: get(FieldLatitude), Longitude: get(FieldLongitude)}, nil
	}
	return nil, fmt.Errorf("unknown data type %q", kind)
}
