package domain

import "fmt"

// Month is a publication month, 1-12, with the Turkish name the magazine
// uses on its archive pages as the canonical string form.
type Month int

var monthNames = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

func (m Month) String() string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m-1]
}

// Index returns the 0-based calendar index (Ocak = 0).
func (m Month) Index() int {
	return int(m) - 1
}

// Valid reports whether m is within the calendar.
func (m Month) Valid() bool {
	return m >= 1 && m <= 12
}

// ParseMonth accepts either a Turkish month name or a 1-12 ordinal string.
func ParseMonth(s string) (Month, error) {
	for i, name := range monthNames {
		if name == s {
			return Month(i + 1), nil
		}
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
		m := Month(n)
		if m.Valid() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}
