package console

import (
	"context"
	"errors"

	"github.com/nichedigital/leaddesk/internal/client/api"
	"github.com/nichedigital/leaddesk/internal/client/models"
)

// Contact records an inquiry that arrived outside the website, e.g. by
// phone, through the public contact endpoint. Backend rate-limit and
// validation messages are shown to the user word for word.
func (a *App) Contact(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}

	req := &models.ContactRequest{}
	var err error

	if req.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.BusinessName, err = getSimpleText(a.reader, "Business name (optional)", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
		return err
	}
	if req.Service, err = getSimpleText(a.reader, "Service (optional)", a.out); err != nil {
		return err
	}
	if req.Message, err = getMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}

	a.inFlight = true
	res, err := a.api.SubmitContact(ctx, req)
	a.inFlight = false
	if err != nil {
		var verr *api.ValidationError
		switch {
		case errors.Is(err, api.ErrRateLimited):
			printlnFn(err.Error())
		case errors.As(err, &verr):
			printlnFn(verr.Detail)
		default:
			printlnFn("Failed to submit. Please try again.")
		}
		return err
	}

	printlnFn(res.Message)
	return nil
}
