package graph

// Subset of the Microsoft Graph resource types used by the assistant.

// TodoTaskList is a To Do task list resource.
type TodoTaskList struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	WellknownListName string `json:"wellknownListName,omitempty"`
}

// Task status values that are locally meaningful. The service defines more;
// everything else is carried through opaquely.
const (
	StatusNotStarted = "notStarted"
	StatusCompleted  = "completed"
)

// ItemBody is the body of a task or message.
type ItemBody struct {
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
}

// TodoTask is a To Do task resource.
type TodoTask struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Status               string    `json:"status,omitempty"`
	CreatedDateTime      string    `json:"createdDateTime,omitempty"`
	LastModifiedDateTime string    `json:"lastModifiedDateTime,omitempty"`
	Importance           string    `json:"importance,omitempty"`
	IsReminderOn         bool      `json:"isReminderOn,omitempty"`
	HasAttachments       bool      `json:"hasAttachments,omitempty"`
	Categories           []string  `json:"categories,omitempty"`
	Body                 *ItemBody `json:"body,omitempty"`
}

// MailFolder is a mail folder resource with item counts.
type MailFolder struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	TotalItemCount  int    `json:"totalItemCount"`
	UnreadItemCount int    `json:"unreadItemCount"`
}

// EmailAddress is a name/address pair.
type EmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Recipient wraps an EmailAddress.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Message is a mail message resource.
type Message struct {
	ID               string      `json:"id"`
	Subject          string      `json:"subject"`
	BodyPreview      string      `json:"bodyPreview,omitempty"`
	Body             *ItemBody   `json:"body,omitempty"`
	ReceivedDateTime string      `json:"receivedDateTime,omitempty"`
	SentDateTime     string      `json:"sentDateTime,omitempty"`
	IsRead           bool        `json:"isRead"`
	From             *Recipient  `json:"from,omitempty"`
	ToRecipients     []Recipient `json:"toRecipients,omitempty"`
}

// Mail is the flattened display shape used by the email tools and renderer.
type Mail struct {
	ID      string
	Name    string
	Email   string
	Subject string
	Text    string
	Date    string
	Read    bool
}

// User is a directory user, reduced to the address-book fields.
type User struct {
	GivenName string `json:"givenName"`
	Surname   string `json:"surname"`
	Mail      string `json:"mail"`
}

func mailFromMessage(m Message) Mail {
	out := Mail{
		ID:      m.ID,
		Subject: m.Subject,
		Text:    m.BodyPreview,
		Read:    m.IsRead,
	}
	if m.From != nil {
		out.Name = m.From.EmailAddress.Name
		out.Email = m.From.EmailAddress.Address
	}
	out.Date = m.ReceivedDateTime
	if out.Date == "" {
		out.Date = m.SentDateTime
	}
	return out
}
