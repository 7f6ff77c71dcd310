package services

import "fmt"

// MailMessage is the outbound mail job handed to the queue. Delivery happens
// asynchronously in a consumer, the API only enqueues.
type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer enqueues mail messages for asynchronous delivery.
type Mailer interface {
	Send(msg MailMessage) error
}

// RecoverPasswordMail builds the password-recovery message pointing the user
// at the front-end reset page.
func RecoverPasswordMail(to, username, resetLink string) MailMessage {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"You are receiving this email because you (or someone else) requested to reset the password of your account.\n\n"+
			"Please click on the following link, or paste it into your browser, to complete the process:\n\n"+
			"%s\n\n"+
			"If you did not request this, please ignore this email and your password will remain unchanged.\n",
		username, resetLink,
	)
	return MailMessage{
		To:      to,
		Subject: "Wallaclone password reset",
		Body:    body,
	}
}
