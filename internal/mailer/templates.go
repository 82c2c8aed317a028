package mailer

import (
	"bytes"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"
	"time"

	"github.com/Skotchmaster/furnishing_catalog/internal/service"
)

var funcs = map[string]any{
	"inc": func(i int) int { return i + 1 },
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
	"orNotProvided": func(s string) string {
		if s == "" {
			return "Not provided"
		}
		return s
	},
	"qty": func(q int) int {
		if q < 1 {
			return 1
		}
		return q
	},
	"price": func(p *float64) string {
		if p == nil || *p == 0 {
			return "Price on request"
		}
		return "₹" + strconv.FormatFloat(*p, 'f', -1, 64)
	},
}

var htmlTmpl = htmltemplate.Must(htmltemplate.New("enquiry.html").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;color:#333">
  <h2 style="color:#8b5e34">New Enquiry Received</h2>
  <h3>Customer Details</h3>
  <table style="border-collapse:collapse">
    <tr><td style="padding:4px 12px 4px 0"><b>Name</b></td><td>{{.UserName}}</td></tr>
    <tr><td style="padding:4px 12px 4px 0"><b>Phone</b></td><td>{{.UserPhone}}</td></tr>
    <tr><td style="padding:4px 12px 4px 0"><b>Email</b></td><td>{{orNotProvided .UserEmail}}</td></tr>
    <tr><td style="padding:4px 12px 4px 0"><b>Address</b></td><td>{{orNotProvided .UserAddress}}</td></tr>
  </table>
  <p>Enquiry ID: <b>{{.EnquiryID}}</b><br>Date: {{.Date}}</p>
  <h3>Products Enquired</h3>
  <table style="border-collapse:collapse;width:100%">
    <tr style="background:#f5efe6">
      <th style="padding:10px;border:1px solid #ddd">#</th>
      <th style="padding:10px;border:1px solid #ddd">Product</th>
      <th style="padding:10px;border:1px solid #ddd">Color/Texture</th>
      <th style="padding:10px;border:1px solid #ddd">Quantity</th>
      <th style="padding:10px;border:1px solid #ddd">Price</th>
    </tr>
    {{- range $i, $it := .Items}}
    <tr>
      <td style="padding:10px;border:1px solid #ddd">{{inc $i}}</td>
      <td style="padding:10px;border:1px solid #ddd">{{$it.Title}}</td>
      <td style="padding:10px;border:1px solid #ddd">{{orNA $it.SelectedColorTexture}}</td>
      <td style="padding:10px;border:1px solid #ddd">{{qty $it.Quantity}}</td>
      <td style="padding:10px;border:1px solid #ddd">{{price $it.PriceAtTime}}</td>
    </tr>
    {{- end}}
  </table>
  <p style="color:#999;font-size:12px">Automated email from Furnishing Catalogue System</p>
</body>
</html>
`))

var textTmpl = texttemplate.Must(texttemplate.New("enquiry.txt").Funcs(funcs).Parse(`NEW ENQUIRY RECEIVED

Customer Details:
Name: {{.UserName}}
Phone: {{.UserPhone}}
Email: {{orNotProvided .UserEmail}}
Address: {{orNotProvided .UserAddress}}

Enquiry ID: {{.EnquiryID}}
Date: {{.Date}}

Products Enquired:
{{range $i, $it := .Items}}
{{inc $i}}. {{$it.Title}}
   Color/Texture: {{orNA $it.SelectedColorTexture}}
   Quantity: {{qty $it.Quantity}}
   Price: {{price $it.PriceAtTime}}
{{end}}
---
Automated email from Furnishing Catalogue System
`))

type view struct {
	service.EnquiryEmail
	Date string
}

// Render returns the subject, HTML body and plain text body for an enquiry notification.
func Render(data service.EnquiryEmail, at time.Time) (subject, html, text string, err error) {
	v := view{EnquiryEmail: data, Date: at.Format("02 Jan 2006, 03:04 PM MST")}

	var hb, tb bytes.Buffer
	if err := htmlTmpl.Execute(&hb, v); err != nil {
		return "", "", "", err
	}
	if err := textTmpl.Execute(&tb, v); err != nil {
		return "", "", "", err
	}
	subject = "New Enquiry from " + data.UserName + " – " + data.EnquiryID
	return subject, hb.String(), tb.String(), nil
}
