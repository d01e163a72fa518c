package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

// Service renders embedded HTML templates and sends them through the Resend
// API. All sending is best-effort from the caller's point of view: requests
// never wait on it, they hand work to the Dispatcher.
type Service struct {
	client    *resend.Client
	from      string
	replyTo   string
	baseURL   string
	templates *template.Template
}

type ReservationEmailData struct {
	CustomerName string
	Date         string
	Time         string
	Service      string
	People       int
}

type ContactNotificationData struct {
	CustomerName  string
	CustomerEmail string
	Phone         string
	Subject       string
	Message       string
}

type ContactReplyData struct {
	CustomerName    string
	OriginalSubject string
	OriginalMessage string
	Response        string
}

type DigestEntry struct {
	Time   string
	Name   string
	Phone  string
	People int
}

type ReservationDigestData struct {
	Date    string
	Entries []DigestEntry
}

type welcomeData struct {
	Email          string
	UnsubscribeURL string
}

type unsubscribeData struct {
	Email string
}

func NewService(apiKey, from, replyTo, baseURL string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %w", err)
	}

	return &Service{
		client:    resend.NewClient(apiKey),
		from:      from,
		replyTo:   replyTo,
		baseURL:   baseURL,
		templates: templates,
	}, nil
}

func (s *Service) send(to, subject, templateName string, data interface{}, headers map[string]string) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
		ReplyTo: s.replyTo,
	}
	if len(headers) > 0 {
		params.Headers = headers
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend API error: %w", err)
	}
	return nil
}

func (s *Service) SendReservationConfirmedEmail(to string, data ReservationEmailData) error {
	return s.send(to, "✅ Réservation confirmée - Mon Restaurant", "reservation_confirmed.html", data, nil)
}

func (s *Service) SendReservationCanceledEmail(to string, data ReservationEmailData) error {
	return s.send(to, "❌ Réservation non disponible - Mon Restaurant", "reservation_canceled.html", data, nil)
}

// SendContactNotificationEmail notifies the site operator of a new contact
// message. The customer does not receive anything at this point.
func (s *Service) SendContactNotificationEmail(operatorEmail string, data ContactNotificationData) error {
	subject := fmt.Sprintf("Nouveau message de contact : %s", data.Subject)
	return s.send(operatorEmail, subject, "contact_notification.html", data, nil)
}

// SendContactReplyEmail forwards a stored admin response to the customer.
// Not called from the reply endpoint; see DESIGN.md for the product decision
// still pending on that flow.
func (s *Service) SendContactReplyEmail(to string, data ContactReplyData) error {
	subject := fmt.Sprintf("Re: %s", data.OriginalSubject)
	return s.send(to, subject, "contact_reply.html", data, nil)
}

func (s *Service) SendNewsletterWelcomeEmail(to, unsubscribeToken string) error {
	unsubscribeURL := fmt.Sprintf("%s/unsubscribe?token=%s", s.baseURL, unsubscribeToken)
	headers := map[string]string{
		"List-Unsubscribe":      fmt.Sprintf("<%s>", unsubscribeURL),
		"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
	}
	data := welcomeData{Email: to, UnsubscribeURL: unsubscribeURL}
	return s.send(to, "🎉 Bienvenue dans notre newsletter !", "newsletter_welcome.html", data, headers)
}

func (s *Service) SendUnsubscribeConfirmationEmail(to string) error {
	return s.send(to, "👋 Désabonnement confirmé", "unsubscribe_confirmation.html", unsubscribeData{Email: to}, nil)
}

func (s *Service) SendReservationDigestEmail(operatorEmail string, data ReservationDigestData) error {
	subject := fmt.Sprintf("Réservations en attente pour le %s", data.Date)
	return s.send(operatorEmail, subject, "reservation_digest.html", data, nil)
}
