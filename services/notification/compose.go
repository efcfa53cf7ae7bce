package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"barberqueue/models"
)

var nextHTML = template.Must(template.New("next").Parse(
	`<p>Hi {{.Customer}},</p>` +
		`<p>Your turn is coming up next for <b>{{.Service}}</b> at <b>{{.Salon}}</b>. Please reach the salon.</p>` +
		`<p><b>Address:</b> {{.Address}}<br/><b>Contact:</b> {{.Contact}}</p>`))

type nextView struct {
	Customer string
	Service  string
	Salon    string
	Address  string
	Contact  string
}

// ComposeNext builds the "you're next" message for the head of a queue.
// The e-mail target is the customer contact when it looks like an address.
func ComposeNext(head models.HeadOfQueue) models.Notification {
	v := nextView{
		Customer: head.Entry.CustomerName,
		Service:  head.Entry.Service,
		Salon:    head.Provider.Name,
		Address:  head.Provider.Address,
		Contact:  head.Provider.Contact,
	}

	text := fmt.Sprintf("Hi %s,\n\nYour turn is coming up next for %s at %s. Please reach the salon.\n\nAddress: %s\nContact: %s",
		v.Customer, v.Service, v.Salon, v.Address, v.Contact)

	var html bytes.Buffer
	if err := nextHTML.Execute(&html, v); err != nil {
		html.Reset()
	}

	n := models.Notification{
		DeviceToken: head.Entry.DeviceToken,
		Subject:     fmt.Sprintf("You're next at %s", v.Salon),
		Text:        text,
		HTML:        html.String(),
		Data: map[string]string{
			"type":       "queue_next",
			"providerId": head.Provider.ID,
			"customerId": head.Entry.CustomerID,
		},
	}
	if contact := strings.TrimSpace(head.Entry.CustomerContact); strings.Contains(contact, "@") {
		n.To = contact
	}
	return n
}
