// SPDX-License-Identifier: GPL-3.0-only

package notifications

import "errors"

// ErrQuotaExceeded marks a dispatch failure caused by the email provider
// rate-limiting or running out of sending credits as opposed to any other
// delivery failure. Callers branch on it with errors.Is.
var ErrQuotaExceeded = errors.New("email provider quota exceeded")

// Mailer is what request handlers depend on; Dispatcher is the production
// implementation.
type Mailer interface {
	Send(data NotificationData) error
}

type NotificationTypes string

const (
	Email NotificationTypes = "EMAIL"
)

type NotificationData struct {
	To        string         `json:"to"`
	ToName    *string        `json:"to_name,omitempty"`
	Subject   string         `json:"subject"`
	Template  string         `json:"template"`
	Variables map[string]any `json:"variables,omitempty"`
}

type NotificationProviders string

const (
	ZeptoMail NotificationProviders = "zepto_mail"
	SMTP      NotificationProviders = "smtp"
	Mock      NotificationProviders = "mock"
)

type ZeptoMailRequest struct {
	BounceAddress string               `json:"bounce_address,omitempty"`
	From          ZeptoMailAddress     `json:"from"`
	To            []ZeptoMailRecipient `json:"to"`
	Subject       string               `json:"subject"`
	HTMLBody      string               `json:"htmlbody"`
	ReplyTo       *ZeptoMailAddress    `json:"reply_to,omitempty"`
}

type ZeptoMailRecipient struct {
	EmailAddress ZeptoMailAddress `json:"email_address"`
}

type ZeptoMailAddress struct {
	Address string  `json:"address"`
	Name    *string `json:"name,omitempty"`
}

type ZeptoMailResponse struct {
	Data      []ZeptoMailData `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Object    string          `json:"object,omitempty"`
	Error     *ZeptoMailError `json:"error,omitempty"`
}

type ZeptoMailData struct {
	Code           string              `json:"code"`
	AdditionalInfo []map[string]string `json:"additional_info,omitempty"`
	Message        string              `json:"message"`
}

type ZeptoMailError struct {
	Code      string                 `json:"code,omitempty"`
	Details   []ZeptoMailErrorDetail `json:"details,omitempty"`
	Message   string                 `json:"message"`
	RequestID string                 `json:"request_id,omitempty"`
}

type ZeptoMailErrorDetail struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Target      string `json:"target"`
	TargetValue string `json:"target_value,omitempty"`
}
