package types

import "testing"

func TestLocaleMapScanValueRoundTrip(t *testing.T) {
	original := LocaleMap{"en": "Plumbing", "ar": "سباكة"}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var decoded LocaleMap
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if decoded["en"] != "Plumbing" || decoded["ar"] != "سباكة" {
		t.Fatalf("unexpected decoded map %v", decoded)
	}
}

func TestLocaleMapScanNil(t *testing.T) {
	decoded := LocaleMap{"en": "stale"}
	if err := decoded.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}
	if decoded != nil {
		t.Fatalf("expected nil map, got %v", decoded)
	}
}

func TestLocaleMapGetFallback(t *testing.T) {
	m := LocaleMap{"ar": "نجار"}
	if got := m.Get("ar"); got != "نجار" {
		t.Fatalf("expected exact locale hit, got %q", got)
	}
	if got := m.Get("en"); got != "نجار" {
		t.Fatalf("expected fallback to available value, got %q", got)
	}
	if got := LocaleMap(nil).Get("en"); got != "" {
		t.Fatalf("expected empty value for nil map, got %q", got)
	}
}
