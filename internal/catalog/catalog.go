// Package catalog holds the static mapping from app package identifiers to
// commercial service metadata, plus the set of known banking packages.
package catalog

import (
	"sort"
	"strings"
)

// Category classifies a commercial service.
type Category string

const (
	CategoryStreaming    Category = "STREAMING"
	CategoryAudiobook    Category = "AUDIOBOOK"
	CategorySoftware     Category = "SOFTWARE"
	CategoryNews         Category = "NEWS"
	CategoryFitness      Category = "FITNESS"
	CategoryEducation    Category = "EDUCATION"
	CategoryGaming       Category = "GAMING"
	CategoryCloudStorage Category = "CLOUD_STORAGE"
	CategoryProductivity Category = "PRODUCTIVITY"
	CategoryOther        Category = "OTHER"
)

// ParseCategory parses a stored category name. Unknown values default to
// OTHER.
func ParseCategory(s string) Category {
	switch Category(strings.ToUpper(s)) {
	case CategoryStreaming, CategoryAudiobook, CategorySoftware, CategoryNews,
		CategoryFitness, CategoryEducation, CategoryGaming, CategoryCloudStorage,
		CategoryProductivity, CategoryOther:
		return Category(strings.ToUpper(s))
	default:
		return CategoryOther
	}
}

// DefaultPrimaryColor is the brand color used for services the catalog does
// not know (0xAARRGGBB).
const (
	DefaultPrimaryColor   int64 = 0xFF6200EE
	DefaultSecondaryColor int64 = 0xFF000000
)

// Service is one catalog entry: the display metadata for a commercial brand.
type Service struct {
	Package        string   `yaml:"package"`
	Name           string   `yaml:"name"`
	Domain         string   `yaml:"domain"`
	PrimaryColor   int64    `yaml:"primary_color"`
	SecondaryColor int64    `yaml:"secondary_color"`
	Category       Category `yaml:"category"`
}

// Catalog is an immutable service table. Built once at startup, never mutated.
type Catalog struct {
	byPackage map[string]Service
	// ordered holds entries sorted by display name; the free-text fallback in
	// service recognition iterates it so that tie-breaks are deterministic.
	ordered      []Service
	bankPackages map[string]struct{}
}

var builtinServices = []Service{
	{Package: "com.spotify.music", Name: "Spotify", Domain: "spotify.com", PrimaryColor: 0xFF1DB954, SecondaryColor: 0xFF191414, Category: CategoryStreaming},
	{Package: "com.netflix.mediaclient", Name: "Netflix", Domain: "netflix.com", PrimaryColor: 0xFFE50914, SecondaryColor: 0xFF000000, Category: CategoryStreaming},
	{Package: "com.amazon.avod.thirdpartyclient", Name: "Prime Video", Domain: "primevideo.com", PrimaryColor: 0xFF00A8E1, SecondaryColor: 0xFF000000, Category: CategoryStreaming},
	{Package: "com.disney.disneyplus", Name: "Disney+", Domain: "disneyplus.com", PrimaryColor: 0xFF113CCF, SecondaryColor: 0xFF000000, Category: CategoryStreaming},
	{Package: "com.hbo.hbonow", Name: "HBO", Domain: "hbo.com", PrimaryColor: 0xFF000000, SecondaryColor: 0xFF8B0000, Category: CategoryStreaming},
	{Package: "com.apple.android.music", Name: "Apple Music", Domain: "apple.com", PrimaryColor: 0xFFFA243C, SecondaryColor: 0xFF000000, Category: CategoryStreaming},
	{Package: "com.google.android.apps.youtube.music", Name: "YouTube Music", Domain: "youtube.com", PrimaryColor: 0xFFFF0000, SecondaryColor: 0xFF000000, Category: CategoryStreaming},
	{Package: "com.audible.application", Name: "Audible", Domain: "audible.com", PrimaryColor: 0xFFF8991C, SecondaryColor: 0xFF000000, Category: CategoryAudiobook},
	{Package: "com.microsoft.office.officehub", Name: "Microsoft 365", Domain: "microsoft.com", PrimaryColor: 0xFF0078D4, SecondaryColor: 0xFF000000, Category: CategoryProductivity},
	{Package: "com.dropbox.android", Name: "Dropbox", Domain: "dropbox.com", PrimaryColor: 0xFF0061FF, SecondaryColor: 0xFFFFFFFF, Category: CategoryCloudStorage},
	{Package: "com.google.android.apps.drive", Name: "Google Drive", Domain: "drive.google.com", PrimaryColor: 0xFF4285F4, SecondaryColor: 0xFFFFFFFF, Category: CategoryCloudStorage},
	{Package: "com.adobe.reader", Name: "Adobe", Domain: "adobe.com", PrimaryColor: 0xFFFF0000, SecondaryColor: 0xFF000000, Category: CategorySoftware},
	{Package: "com.strava", Name: "Strava", Domain: "strava.com", PrimaryColor: 0xFFFC4C02, SecondaryColor: 0xFF000000, Category: CategoryFitness},
	{Package: "com.nike.plusgps", Name: "Nike Run Club", Domain: "nike.com", PrimaryColor: 0xFF000000, SecondaryColor: 0xFFFFFFFF, Category: CategoryFitness},
	{Package: "com.duolingo", Name: "Duolingo", Domain: "duolingo.com", PrimaryColor: 0xFF58CC02, SecondaryColor: 0xFFFFFFFF, Category: CategoryEducation},
	{Package: "com.grammarly.android.keyboard", Name: "Grammarly", Domain: "grammarly.com", PrimaryColor: 0xFF15C39A, SecondaryColor: 0xFFFFFFFF, Category: CategoryProductivity},
	{Package: "com.nytimes.android", Name: "NYTimes", Domain: "nytimes.com", PrimaryColor: 0xFF000000, SecondaryColor: 0xFFFFFFFF, Category: CategoryNews},
	{Package: "com.medium.reader", Name: "Medium", Domain: "medium.com", PrimaryColor: 0xFF000000, SecondaryColor: 0xFFFFFFFF, Category: CategoryNews},
	{Package: "com.epicgames.fortnite", Name: "Fortnite", Domain: "fortnite.com", PrimaryColor: 0xFF000000, SecondaryColor: 0xFFFFFFFF, Category: CategoryGaming},
	{Package: "com.activision.callofduty.shooter", Name: "Call of Duty", Domain: "callofduty.com", PrimaryColor: 0xFFED1C24, SecondaryColor: 0xFF000000, Category: CategoryGaming},
}

// builtinBankPackages lists banking apps whose notifications are filtered
// before service recognition.
var builtinBankPackages = []string{
	"kz.kaspi.mobile",
	"kz.halykbank.onlinebank",
	"kz.bcc.app",
	"kz.forte.app",
	"ru.sberbankmobile",
	"ru.vtb24.mobilebanking.android",
	"com.tinkoff.bank",
	"com.chase.sig.android",
	"com.bankofamerica.digitalwallet",
	"com.wf.wellsfargomobile",
	"com.revolut.revolut",
	"com.transferwise.android",
}

// New builds a catalog from the built-in tables and optional overrides.
// Overrides with a known package replace the built-in entry; new packages are
// appended.
func New(overrides ...Service) *Catalog {
	c := &Catalog{
		byPackage:    make(map[string]Service, len(builtinServices)+len(overrides)),
		bankPackages: make(map[string]struct{}, len(builtinBankPackages)),
	}

	for _, s := range builtinServices {
		c.byPackage[s.Package] = s
	}
	for _, s := range overrides {
		if s.Package == "" || s.Name == "" {
			continue
		}
		if s.Category == "" {
			s.Category = CategoryOther
		}
		if s.PrimaryColor == 0 {
			s.PrimaryColor = DefaultPrimaryColor
		}
		if s.SecondaryColor == 0 {
			s.SecondaryColor = DefaultSecondaryColor
		}
		c.byPackage[s.Package] = s
	}

	c.ordered = make([]Service, 0, len(c.byPackage))
	for _, s := range c.byPackage {
		c.ordered = append(c.ordered, s)
	}
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].Name < c.ordered[j].Name
	})

	for _, pkg := range builtinBankPackages {
		c.bankPackages[pkg] = struct{}{}
	}

	return c
}

// LookupPackage returns the catalog entry for an app package identifier.
func (c *Catalog) LookupPackage(pkg string) (Service, bool) {
	s, ok := c.byPackage[pkg]
	return s, ok
}

// MatchName scans text for any known service's display name as a
// case-insensitive substring. Entries are checked in name order, so the result
// is deterministic when several names occur in the same text.
func (c *Catalog) MatchName(text string) (Service, bool) {
	lower := strings.ToLower(text)
	for _, s := range c.ordered {
		if strings.Contains(lower, strings.ToLower(s.Name)) {
			return s, true
		}
	}
	return Service{}, false
}

// IsBankPackage reports whether the package belongs to a known banking app.
func (c *Catalog) IsBankPackage(pkg string) bool {
	_, ok := c.bankPackages[pkg]
	return ok
}

// Services returns the catalog entries in name order.
func (c *Catalog) Services() []Service {
	out := make([]Service, len(c.ordered))
	copy(out, c.ordered)
	return out
}
