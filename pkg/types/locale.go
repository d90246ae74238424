package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LocaleMap stores localized strings keyed by locale code, persisted as JSONB.
type LocaleMap map[string]string

// Value marshals the map into JSON for Postgres.
func (m LocaleMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (m *LocaleMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("locale map: unsupported scan type %T", value)
	}

	result := make(LocaleMap)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*m = result
	return nil
}

// Get returns the translation for locale, falling back to any available value.
func (m LocaleMap) Get(locale string) string {
	if v, ok := m[locale]; ok {
		return v
	}
	for _, v := range m {
		return v
	}
	return ""
}
