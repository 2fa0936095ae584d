// Package marketing serves the public site: the home page, the contact form
// and demo scheduling. Inquiries are validated and logged; nothing is stored.
package marketing

// Messages shown after a form post.
const (
	MsgRequiredFields = "Please fill in all required fields"
	MsgInvalidEmail   = "Please enter a valid email address"
	MsgInvalidTopic   = "Please choose a valid topic"
	MsgInvalidDate    = "Please choose a valid date"
	MsgContactSent    = "Thank you for contacting us! We will get back to you soon."
	MsgDemoScheduled  = "Thank you! We have scheduled your demo and will contact you shortly."
)

// Contact topics, shown as tabs on the contact page.
const (
	TopicSales       = "sales"
	TopicSupport     = "support"
	TopicPartnership = "partnership"
)

// Topics lists the contact tabs in display order.
var Topics = []string{TopicSales, TopicSupport, TopicPartnership}

// ContactRequest is the contact form.
type ContactRequest struct {
	Topic   string `form:"topic"`
	Name    string `form:"name"`
	Email   string `form:"email"`
	Company string `form:"company"`
	Subject string `form:"subject"`
	Message string `form:"message"`
}

// DemoRequest is the demo scheduling form. Date is YYYY-MM-DD.
type DemoRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Company  string `form:"company"`
	Phone    string `form:"phone"`
	Date     string `form:"date"`
	Timezone string `form:"timezone"`
	Message  string `form:"message"`
}

// Inquiry is a validated, sanitized form submission as it is logged.
type Inquiry struct {
	Kind     string
	Topic    string
	Name     string
	Email    string
	Company  string
	Subject  string
	Phone    string
	Date     string
	Timezone string
	Message  string
	RemoteIP string
}
