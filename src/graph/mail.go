package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

const mailSelect = "id,subject,bodyPreview,receivedDateTime,sentDateTime,isRead,from,toRecipients"

var validate = validator.New()

// normalizeFolderName strips spaces from a display name so well-known
// folders like "Deleted Items" address the deleteditems endpoint.
func normalizeFolderName(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

// ListMessages retrieves the newest messages in the mailbox, bounded by top.
func (c *Client) ListMessages(ctx context.Context, top int) ([]Mail, error) {
	if top <= 0 {
		top = 100
	}
	path := fmt.Sprintf("/me/messages?$select=%s&$top=%d", mailSelect, top)

	var out valueEnvelope[Message]
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	mails := make([]Mail, 0, len(out.Value))
	for _, m := range out.Value {
		mails = append(mails, mailFromMessage(m))
	}
	return mails, nil
}

// ListFolders retrieves the mail folders with their item counts.
func (c *Client) ListFolders(ctx context.Context) ([]MailFolder, error) {
	var out valueEnvelope[MailFolder]
	if err := c.do(ctx, http.MethodGet, "/me/mailFolders", nil, &out); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return out.Value, nil
}

// ListFolderMessages retrieves messages within a folder, bounded by top. The
// folder may be a display name or a well-known folder id.
func (c *Client) ListFolderMessages(ctx context.Context, folder string, top int) ([]Mail, error) {
	if top <= 0 {
		top = 50
	}
	path := fmt.Sprintf("/me/mailFolders/%s/messages?$select=%s&$top=%d",
		url.PathEscape(normalizeFolderName(folder)), mailSelect, top)

	var out valueEnvelope[Message]
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list folder messages: %w", err)
	}

	mails := make([]Mail, 0, len(out.Value))
	for _, m := range out.Value {
		mails = append(mails, mailFromMessage(m))
	}
	return mails, nil
}

// GetMessage retrieves a single message with its full body.
func (c *Client) GetMessage(ctx context.Context, folder, id string) (*Message, error) {
	path := fmt.Sprintf("/me/mailFolders/%s/messages/%s",
		url.PathEscape(normalizeFolderName(folder)), url.PathEscape(id))

	var msg Message
	if err := c.do(ctx, http.MethodGet, path, nil, &msg); err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &msg, nil
}

// SendMailInput is the validated form for sending a message.
type SendMailInput struct {
	Subject string `validate:"required"`
	To      string `validate:"required,email"`
	Body    string `validate:"required"`
}

// SendMail validates the form and sends a plain-text message. Validation
// failures abort before any request is issued.
func (c *Client) SendMail(ctx context.Context, input SendMailInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMailForm, err)
	}

	payload := struct {
		Message struct {
			Subject      string      `json:"subject"`
			Body         ItemBody    `json:"body"`
			ToRecipients []Recipient `json:"toRecipients"`
		} `json:"message"`
	}{}
	payload.Message.Subject = input.Subject
	payload.Message.Body = ItemBody{ContentType: "Text", Content: input.Body}
	payload.Message.ToRecipients = []Recipient{{EmailAddress: EmailAddress{Address: input.To}}}

	if err := c.do(ctx, http.MethodPost, "/me/sendMail", payload, nil); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LatestSentMessageID returns the id of the most recently sent message.
func (c *Client) LatestSentMessageID(ctx context.Context) (string, error) {
	path := "/me/mailFolders/SentItems/messages?$orderby=sentDateTime%20desc&$top=1"

	var out valueEnvelope[Message]
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", fmt.Errorf("latest sent message: %w", err)
	}
	if len(out.Value) == 0 {
		return "", nil
	}
	return out.Value[0].ID, nil
}

// MoveMessage moves a message out of a folder into the destination folder.
func (c *Client) MoveMessage(ctx context.Context, folder, id, destination string) error {
	path := fmt.Sprintf("/me/mailFolders/%s/messages/%s/move",
		url.PathEscape(normalizeFolderName(folder)), url.PathEscape(id))

	payload := struct {
		DestinationID string `json:"destinationId"`
	}{DestinationID: destination}

	if err := c.do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("move message: %w", err)
	}
	return nil
}

// DeleteMessage moves a message to the Deleted Items folder.
func (c *Client) DeleteMessage(ctx context.Context, folder, id string) error {
	return c.MoveMessage(ctx, folder, id, "deleteditems")
}

// ListUsers retrieves the directory users, reduced to address-book entries.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out valueEnvelope[User]
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out.Value, nil
}
