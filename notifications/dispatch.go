// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"fmt"
	"waitline-server/commons"
)

// Dispatcher routes a notification to the configured email provider.
// It satisfies Mailer so handlers can be tested with a fake.
type Dispatcher struct {
	Provider NotificationProviders
}

func NewDispatcher() *Dispatcher {
	provider := NotificationProviders(commons.GetEnv("EMAIL_PROVIDER", string(ZeptoMail)))
	if commons.GetEnv("MOCK_EMAIL_NOTIFICATIONS") == "true" {
		commons.Logger.Debug("Mock email notifications enabled, using mock provider")
		provider = Mock
	}
	return &Dispatcher{Provider: provider}
}

func (d *Dispatcher) Send(data NotificationData) error {
	commons.Logger.Debugf("Dispatching notification:\n- type=%s\n- provider=%s", Email, d.Provider)

	var err error
	switch d.Provider {
	case ZeptoMail:
		err = ZeptoMailClient(data)
	case SMTP:
		err = SMTPClient(data)
	case Mock:
		err = MockEmailClient(data)
	default:
		err = fmt.Errorf("unsupported email provider: %s", d.Provider)
	}

	if err != nil {
		commons.Logger.Errorf("Failed to dispatch notification:\n%v", err)
		return err
	}

	commons.Logger.Infof("Notification dispatched successfully:\n- type=%s\n- provider=%s", Email, d.Provider)
	return nil
}
