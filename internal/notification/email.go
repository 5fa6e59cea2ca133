// Package notification gửi email cảnh báo cho admin khi có sự kiện kiểm duyệt.
package notification

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"content_craft/internal/global"
	"content_craft/internal/logger"
)

// Enabled cho biết notification email có được cấu hình hay không.
// SMTP_Host hoặc AdminAlertEmail rỗng nghĩa là tính năng bị tắt.
func Enabled() bool {
	cfg := global.ServerConfig
	return cfg != nil && cfg.SMTP_Host != "" && cfg.AdminAlertEmail != ""
}

// SendModerationAlert gửi email thông báo kiểm duyệt đến địa chỉ admin đã cấu hình.
// Gửi bất đồng bộ; lỗi gửi mail chỉ log warning, không bao giờ chặn request.
func SendModerationAlert(subject string, body string) {
	if !Enabled() {
		return
	}

	cfg := global.ServerConfig
	msg := gomail.NewMessage()
	from := cfg.SMTP_From
	if from == "" {
		from = cfg.SMTP_Username
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", cfg.AdminAlertEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_Username, cfg.SMTP_Password)

	go func() {
		if err := dialer.DialAndSend(msg); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"subject": subject,
				"error":   err.Error(),
			}).Warn("[NOTIFICATION] Không thể gửi email cảnh báo kiểm duyệt")
		}
	}()
}
