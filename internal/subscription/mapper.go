package subscription

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/hashiroii/tiyin-server/internal/catalog"
	"github.com/hashiroii/tiyin-server/internal/money"
)

// firestoreEntity is the document shape the mobile clients read and write at
// users/{uid}/subscriptions/{id}. Dates are epoch milliseconds at UTC
// midnight, the amount is a cost display string.
type firestoreEntity struct {
	ServiceName        string `firestore:"serviceName"`
	ServiceDomain      string `firestore:"serviceDomain"`
	Cost               string `firestore:"cost"`
	Period             string `firestore:"period"`
	NextPaymentDate    int64  `firestore:"nextPaymentDate"`
	CurrentPaymentDate int64  `firestore:"currentPaymentDate"`
	ServiceType        string `firestore:"serviceType"`
	LogoURL            string `firestore:"logoUrl"`
	PrimaryColor       int64  `firestore:"primaryColor"`
	SecondaryColor     int64  `firestore:"secondaryColor"`
	CreatedAt          int64  `firestore:"createdAt"`
	UpdatedAt          int64  `firestore:"updatedAt"`
}

func toEntity(s Subscription, now time.Time) firestoreEntity {
	return firestoreEntity{
		ServiceName:        s.Service.Name,
		ServiceDomain:      s.Service.Domain,
		Cost:               money.FormatCost(s.Amount, s.Currency),
		Period:             string(s.Period),
		NextPaymentDate:    dateToMillis(s.NextPaymentDate),
		CurrentPaymentDate: dateToMillis(s.CurrentPaymentDate),
		ServiceType:        string(s.Service.Category),
		LogoURL:            s.LogoURL,
		PrimaryColor:       s.Service.PrimaryColor,
		SecondaryColor:     s.Service.SecondaryColor,
		CreatedAt:          now.UnixMilli(),
		UpdatedAt:          now.UnixMilli(),
	}
}

func toDomain(e firestoreEntity, id string) Subscription {
	amount, currency := money.ParseCost(e.Cost)
	return Subscription{
		ID: id,
		Service: ServiceInfo{
			Name:           e.ServiceName,
			Domain:         e.ServiceDomain,
			PrimaryColor:   e.PrimaryColor,
			SecondaryColor: e.SecondaryColor,
			Category:       catalog.ParseCategory(e.ServiceType),
		},
		LogoURL:            e.LogoURL,
		Amount:             amount,
		Currency:           currency,
		Period:             ParsePeriod(e.Period),
		NextPaymentDate:    millisToDate(e.NextPaymentDate),
		CurrentPaymentDate: millisToDate(e.CurrentPaymentDate),
	}
}

func dateToMillis(d civil.Date) int64 {
	return d.In(time.UTC).UnixMilli()
}

func millisToDate(ms int64) civil.Date {
	return civil.DateOf(time.UnixMilli(ms).UTC())
}
