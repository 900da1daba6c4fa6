// Package forms validates submitted HTML forms into typed values.
package forms

import (
	"context"
	"strconv"
	"strings"

	"postboard/internal/models"
)

// Messages shown next to invalid fields.
const (
	MsgRequired      = "This field is required."
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// FieldErrors maps a form field to its messages. The empty-string key holds
// errors not tied to a single field.
type FieldErrors map[string][]string

// Add appends msg to field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has any errors.
func (e FieldErrors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message for field, or "".
func (e FieldErrors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Any reports whether at least one error was recorded.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// GroupLookup resolves a group choice. Misses must be NOT_FOUND AppErrors.
type GroupLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Group, error)
}

// PostForm holds the raw submitted post fields. Only these fields are read
// from the request body.
type PostForm struct {
	Text  string `form:"text"`
	Group string `form:"group"`
}

// PostDelta is a validated post change.
type PostDelta struct {
	Text    string
	GroupID *uint
	Group   *models.Group
}

// PostFormFrom prefills the form with an existing post.
func PostFormFrom(p *models.Post) PostForm {
	f := PostForm{Text: p.Text}
	if p.GroupID != nil {
		f.Group = strconv.FormatUint(uint64(*p.GroupID), 10)
	}
	return f
}

// Apply writes the delta onto p.
func (d PostDelta) Apply(p *models.Post) {
	p.Text = d.Text
	p.GroupID = d.GroupID
	p.Group = d.Group
}

// Validate normalizes f. Field problems come back as FieldErrors; only
// lookup failures other than a miss are returned as err.
func (f PostForm) Validate(ctx context.Context, groups GroupLookup) (PostDelta, FieldErrors, error) {
	errs := FieldErrors{}
	var delta PostDelta

	delta.Text = strings.TrimSpace(f.Text)
	if delta.Text == "" {
		errs.Add("text", MsgRequired)
	}

	if raw := strings.TrimSpace(f.Group); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			errs.Add("group", MsgInvalidChoice)
		} else {
			group, err := groups.GetByID(ctx, uint(id))
			switch {
			case models.IsNotFound(err):
				errs.Add("group", MsgInvalidChoice)
			case err != nil:
				return PostDelta{}, nil, err
			default:
				gid := group.ID
				delta.GroupID = &gid
				delta.Group = group
			}
		}
	}

	if errs.Any() {
		return PostDelta{}, errs, nil
	}
	return delta, nil, nil
}
