package pms

import (
	"fmt"
	"net/url"
)

// BackofficeLinks builds deep links into the back-office UI.
type BackofficeLinks struct {
	BaseURL string
}

// ReservationFolioURL returns the folio page of a reservation.
func (l BackofficeLinks) ReservationFolioURL(propertyID, reservationID string) string {
	return fmt.Sprintf("%s/properties/%s/reservations/%s/folio",
		l.BaseURL, url.PathEscape(propertyID), url.PathEscape(reservationID))
}

// GeneralFolioURL returns the page of an external (non-reservation) folio.
func (l BackofficeLinks) GeneralFolioURL(propertyID, folioRef string) string {
	return fmt.Sprintf("%s/properties/%s/folios/%s",
		l.BaseURL, url.PathEscape(propertyID), url.PathEscape(folioRef))
}
