package detect

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/hashiroii/tiyin-server/internal/catalog"
	"github.com/hashiroii/tiyin-server/internal/logo"
	"github.com/hashiroii/tiyin-server/internal/subscription"
)

const (
	// defaultNextPaymentDays is used when no date token appears in the text.
	defaultNextPaymentDays = 30
	// defaultCurrentPaymentDays backdates the last charge when nothing better
	// is known. A known-lossy approximation: every detection is treated as a
	// mid-cycle snapshot.
	defaultCurrentPaymentDays = 15
)

// Classifier decides whether a notification describes a subscription charge
// and, if so, produces the normalized record. It is pure computation over the
// notification text and the static catalog; it performs no I/O and is safe
// for one-notification-at-a-time invocation.
type Classifier struct {
	catalog  *catalog.Catalog
	resolver AppNameResolver

	// now is replaceable in tests.
	now func() time.Time
}

// NewClassifier creates a classifier over the given catalog. resolver may be
// nil, in which case unknown packages name themselves by their trailing
// segment.
func NewClassifier(cat *catalog.Catalog, resolver AppNameResolver) *Classifier {
	return &Classifier{
		catalog:  cat,
		resolver: resolver,
		now:      time.Now,
	}
}

// Classify runs the detection pipeline over one notification event. The
// second return value is false when the notification is not
// subscription-relevant.
func (c *Classifier) Classify(event Event) (*subscription.Subscription, bool) {
	// Banking apps produce high notification volume, most of it irrelevant.
	// Filter them on payment signal before the service-recognition step.
	if c.catalog.IsBankPackage(event.Package) {
		payment := ExtractPaymentData(event.Title, event.Body)
		if payment == nil || !payment.IsRecurring {
			return nil, false
		}
	}

	service := c.recognizeService(event)

	payment := ExtractPaymentData(event.Title, event.Body)
	amount, currency := decimal.Zero, "USD"
	if payment != nil {
		amount, currency = payment.Amount, payment.Currency
	}

	period := DetectPeriod(event.Title, event.Body)

	today := civil.DateOf(c.now())
	next, current := c.paymentDates(event, today)

	return &subscription.Subscription{
		Service:            service,
		LogoURL:            logo.PrimaryURL(service.Domain),
		Amount:             amount,
		Currency:           currency,
		Period:             period,
		NextPaymentDate:    next,
		CurrentPaymentDate: current,
	}, true
}

// recognizeService resolves the commercial service behind a notification:
// package lookup, then display-name scan over the combined text, then a
// generic entry named after the app itself.
func (c *Classifier) recognizeService(event Event) subscription.ServiceInfo {
	if s, ok := c.catalog.LookupPackage(event.Package); ok {
		return serviceInfo(s)
	}

	if s, ok := c.catalog.MatchName(event.combined()); ok {
		return serviceInfo(s)
	}

	name := event.AppName
	if name == "" && c.resolver != nil {
		if resolved, err := c.resolver.AppName(event.Package); err == nil && resolved != "" {
			name = resolved
		}
	}
	if name == "" {
		name = FallbackAppName(event.Package)
	}

	return subscription.ServiceInfo{
		Name:           name,
		PrimaryColor:   catalog.DefaultPrimaryColor,
		SecondaryColor: catalog.DefaultSecondaryColor,
		Category:       catalog.CategoryOther,
	}
}

// paymentDates derives the next and current payment dates. The body is
// searched first, the title only when the body is empty. The current payment
// date is never extracted from text.
func (c *Classifier) paymentDates(event Event, today civil.Date) (next, current civil.Date) {
	text := event.Body
	if text == "" {
		text = event.Title
	}

	next, ok := ExtractDate(text)
	if !ok {
		next = today.AddDays(defaultNextPaymentDays)
	}
	current = today.AddDays(-defaultCurrentPaymentDays)
	return next, current
}

func serviceInfo(s catalog.Service) subscription.ServiceInfo {
	return subscription.ServiceInfo{
		Name:           s.Name,
		Domain:         s.Domain,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		Category:       s.Category,
	}
}
