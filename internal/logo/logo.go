// Package logo builds favicon URLs for service domains.
package logo

import "fmt"

// URLs returns the logo URL chain for a domain, best source first. Clients
// walk the list until one loads.
func URLs(domain string) []string {
	if domain == "" {
		return nil
	}
	return []string{
		fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=256", domain),
		fmt.Sprintf("https://icons.duckduckgo.com/ip3/%s.ico", domain),
		fmt.Sprintf("https://logo.clearbit.com/%s", domain),
		fmt.Sprintf("https://%s/favicon.ico", domain),
	}
}

// PrimaryURL returns the preferred logo URL for a domain, or empty when the
// domain is unknown.
func PrimaryURL(domain string) string {
	if domain == "" {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=256", domain)
}
