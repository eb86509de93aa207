package models

// Notification представляет исходящее уведомление клиенту.
// Сообщения публикуются в очередь и отправляются воркером по SMTP,
// доставка выполняется по принципу best-effort.
type Notification struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
