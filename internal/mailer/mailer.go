package mailer

// Mailer defines the interface for seller email notifications.
type Mailer interface {
	SendListingDeletedEmail(toEmail, listingTitle string) error
}
