// Package city maps Korean region names to the identifiers the
// OpenWeatherMap API expects, and back.
package city

// CityEntry pairs a Korean display name with its upstream identifier.
type CityEntry struct {
	KoreanName    string
	CanonicalName string
}

const (
	hangulFirst = '\uAC00' // 가
	hangulLast  = '\uD7A3' // 힣
)

var entries = []CityEntry{
	{"서울", "Seoul"},
	{"부산", "Busan"},
	{"대구", "Daegu"},
	{"인천", "Incheon"},
	{"광주", "Gwangju"},
	{"대전", "Daejeon"},
	{"울산", "Ulsan"},
	{"세종", "Sejong"},
	{"경기", "Gyeonggi-do"},
	{"강원", "Gangwon-do"},
	{"충북", "Chungcheongbuk-do"},
	{"충남", "Chungcheongnam-do"},
	{"전북", "Jeollabuk-do"},
	{"전남", "Jeollanam-do"},
	{"경북", "Gyeongsangbuk-do"},
	{"경남", "Gyeongsangnam-do"},
	{"제주", "Jeju-do"},
}

// Both tables are read-only after init.
var (
	toCanonical   = make(map[string]string, len(entries))
	toDisplayName = make(map[string]string, len(entries))
)

func init() {
	for _, e := range entries {
		if _, dup := toCanonical[e.KoreanName]; dup {
			panic("city: duplicate korean name " + e.KoreanName)
		}
		if _, dup := toDisplayName[e.CanonicalName]; dup {
			panic("city: duplicate canonical name " + e.CanonicalName)
		}
		toCanonical[e.KoreanName] = e.CanonicalName
		toDisplayName[e.CanonicalName] = e.KoreanName
	}
}

// IsKoreanText reports whether text is non-empty and made only of
// precomposed Hangul syllables. Whitespace, digits, Latin letters and bare
// jamo all fail.
func IsKoreanText(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < hangulFirst || r > hangulLast {
			return false
		}
	}
	return true
}

// ToCanonical returns the upstream identifier for a Korean region name.
func ToCanonical(koreanName string) (string, bool) {
	name, ok := toCanonical[koreanName]
	return name, ok
}

// ToDisplayName returns the Korean name for an upstream identifier. Places
// outside the table (e.g. reported by a coordinate lookup) are not found.
func ToDisplayName(canonicalName string) (string, bool) {
	name, ok := toDisplayName[canonicalName]
	return name, ok
}

// Entries returns a copy of the table in declaration order.
func Entries() []CityEntry {
	out := make([]CityEntry, len(entries))
	copy(out, entries)
	return out
}
