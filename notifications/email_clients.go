// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"waitline-server/commons"

	"gopkg.in/gomail.v2"
)

func MockEmailClient(data NotificationData) error {
	commons.Logger.Info("=== MOCK EMAIL NOTIFICATION ===")
	commons.Logger.Infof("To: %s", data.To)
	if data.ToName != nil {
		commons.Logger.Infof("To Name: %s", *data.ToName)
	}
	commons.Logger.Infof("Subject: %s", data.Subject)
	commons.Logger.Infof("Template: %s", data.Template)

	if len(data.Variables) > 0 {
		commons.Logger.Info("Variables:")
		for key, value := range data.Variables {
			commons.Logger.Infof("  %s: %v", key, value)
		}
	}

	if data.Template != "" {
		htmlBody, err := loadAndRenderTemplate(data.Template, data.Variables)
		if err != nil {
			commons.Logger.Errorf("Failed to render template: %v", err)
			return fmt.Errorf("failed to render template: %w", err)
		}

		commons.Logger.Info("=== RENDERED EMAIL CONTENT ===")
		fmt.Println(htmlBody)
		commons.Logger.Info("=== END EMAIL CONTENT ===")
	}

	commons.Logger.Info("=== EMAIL MOCK COMPLETE ===")
	return nil
}

func ZeptoMailClient(data NotificationData) error {
	commons.Logger.Debug("Sending email via ZeptoMail")

	apiKey := commons.GetEnv("EMAIL_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("EMAIL_API_KEY environment variable is not set")
	}

	fromEmail := commons.GetEnv("EMAIL_FROM_ADDRESS")
	if fromEmail == "" {
		return fmt.Errorf("EMAIL_FROM_ADDRESS environment variable is not set")
	}

	fromName := commons.GetEnv("EMAIL_FROM_NAME", "Waitline")

	if data.To == "" {
		return fmt.Errorf("'to' field is required")
	}

	if data.Subject == "" {
		return fmt.Errorf("'subject' field is required")
	}

	htmlBody, err := loadAndRenderTemplate(data.Template, data.Variables)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	reqBody := ZeptoMailRequest{
		From: ZeptoMailAddress{Address: fromEmail, Name: &fromName},
		To: []ZeptoMailRecipient{
			{EmailAddress: ZeptoMailAddress{Address: data.To, Name: data.ToName}},
		},
		Subject:  data.Subject,
		HTMLBody: htmlBody,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := commons.GetEnv("ZEPTOMAIL_API_URL", "https://api.zeptomail.com/v1.1/email")
	req, err := http.NewRequest("POST", apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Zoho-enczapikey "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach ZeptoMail: %w", err)
	}
	defer resp.Body.Close()

	var zmResp ZeptoMailResponse
	if err := json.NewDecoder(resp.Body).Decode(&zmResp); err != nil && resp.StatusCode < 400 {
		commons.Logger.Warnf("Failed to decode ZeptoMail response: %v", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("ZeptoMail returned 429: %w", ErrQuotaExceeded)
	}

	if resp.StatusCode >= 400 {
		if zmResp.Error != nil && isQuotaError(zmResp.Error) {
			return fmt.Errorf("ZeptoMail rejected the message (%s): %w", zmResp.Error.Code, ErrQuotaExceeded)
		}
		if zmResp.Error != nil {
			return fmt.Errorf("ZeptoMail error %s: %s", zmResp.Error.Code, zmResp.Error.Message)
		}
		return fmt.Errorf("ZeptoMail returned status %d", resp.StatusCode)
	}

	commons.Logger.Info("Email sent successfully via ZeptoMail")
	return nil
}

func isQuotaError(zmErr *ZeptoMailError) bool {
	haystack := strings.ToLower(zmErr.Code + " " + zmErr.Message)
	return strings.Contains(haystack, "quota") ||
		strings.Contains(haystack, "credit") ||
		strings.Contains(haystack, "rate limit")
}

func SMTPClient(data NotificationData) error {
	commons.Logger.Debug("Sending email via SMTP")

	smtpHost := commons.GetEnv("SMTP_HOST")
	if smtpHost == "" {
		return fmt.Errorf("SMTP_HOST environment variable is not set")
	}

	smtpPort := commons.GetEnv("SMTP_PORT")
	if smtpPort == "" {
		return fmt.Errorf("SMTP_PORT environment variable is not set")
	}

	username := commons.GetEnv("SMTP_USERNAME")
	if username == "" {
		return fmt.Errorf("SMTP_USERNAME environment variable is not set")
	}

	password := commons.GetEnv("SMTP_PASSWORD")
	if password == "" {
		return fmt.Errorf("SMTP_PASSWORD environment variable is not set")
	}

	fromEmail := commons.GetEnv("SMTP_FROM_EMAIL")
	if fromEmail == "" {
		return fmt.Errorf("SMTP_FROM_EMAIL environment variable is not set")
	}

	fromName := commons.GetEnv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "Waitline"
	}

	if data.To == "" {
		return fmt.Errorf("'to' field is required")
	}

	if data.Subject == "" {
		return fmt.Errorf("'subject' field is required")
	}

	if data.Template == "" {
		return fmt.Errorf("'template' field is required")
	}

	htmlBody, err := loadAndRenderTemplate(data.Template, data.Variables)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %s", smtpPort)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(fromEmail, fromName))
	toName := ""
	if data.ToName != nil {
		toName = *data.ToName
	}
	message.SetHeader("To", message.FormatAddress(data.To, toName))
	message.SetHeader("Subject", data.Subject)
	message.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(smtpHost, port, username, password)
	dialer.TLSConfig = &tls.Config{
		ServerName:         smtpHost,
		InsecureSkipVerify: false,
	}

	if err := dialer.DialAndSend(message); err != nil {
		commons.Logger.Error("Failed to send email via SMTP:", err)
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	commons.Logger.Info("Email sent successfully via SMTP")
	return nil
}

func loadAndRenderTemplate(templateName string, variables map[string]any) (string, error) {
	templatePath := filepath.Join("email_templates", templateName+".html")

	if _, err := os.Stat(templatePath); os.IsNotExist(err) {
		commons.Logger.Warnf("Template file not found: %s.", templatePath)
		return "", fmt.Errorf("template file not found: %s", templatePath)
	}

	templateContent, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", templatePath, err)
	}

	tmpl, err := template.New(templateName).Parse(string(templateContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}
