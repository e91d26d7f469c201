package preferences

// Preferences holds a user's app settings.
type Preferences struct {
	Theme                string `json:"theme" firestore:"theme"`
	Language             string `json:"language" firestore:"language"`
	Currency             string `json:"currency" firestore:"currency"`
	CardView             string `json:"cardView" firestore:"cardView"`
	ShowSpendingCard     bool   `json:"showSpendingCard" firestore:"showSpendingCard"`
	NotificationsEnabled bool   `json:"notificationsEnabled" firestore:"notificationsEnabled"`
	PushRemindersEnabled bool   `json:"pushRemindersEnabled" firestore:"pushRemindersEnabled"`
}

// Defaults mirrors the settings a fresh account starts with.
func Defaults() Preferences {
	return Preferences{
		Theme:                "System",
		Language:             "",
		Currency:             "KZT",
		CardView:             "Default",
		ShowSpendingCard:     true,
		NotificationsEnabled: true,
		PushRemindersEnabled: true,
	}
}

// PatchRequest carries a partial preferences update. Nil fields are left
// unchanged.
type PatchRequest struct {
	Theme                *string `json:"theme"`
	Language             *string `json:"language"`
	Currency             *string `json:"currency"`
	CardView             *string `json:"cardView"`
	ShowSpendingCard     *bool   `json:"showSpendingCard"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	PushRemindersEnabled *bool   `json:"pushRemindersEnabled"`
}

func (r *PatchRequest) applyTo(p *Preferences) {
	if r.Theme != nil {
		p.Theme = *r.Theme
	}
	if r.Language != nil {
		p.Language = *r.Language
	}
	if r.Currency != nil {
		p.Currency = *r.Currency
	}
	if r.CardView != nil {
		p.CardView = *r.CardView
	}
	if r.ShowSpendingCard != nil {
		p.ShowSpendingCard = *r.ShowSpendingCard
	}
	if r.NotificationsEnabled != nil {
		p.NotificationsEnabled = *r.NotificationsEnabled
	}
	if r.PushRemindersEnabled != nil {
		p.PushRemindersEnabled = *r.PushRemindersEnabled
	}
}
