package normalize

import (
	"context"
	"fmt"
	"strings"

	"o365-calendar/pkg/outlook"
)

// Directory resolves contact and group references.
type Directory interface {
	Contact(ctx context.Context, id string) (outlook.Contact, error)
	Group(ctx context.Context, id string) (outlook.Group, error)
}

// AttendeeInput is the closed set of accepted attendee sources.
type AttendeeInput interface {
	isAttendeeInput()
}

// AttendeeList is stored verbatim as the attendee list.
type AttendeeList []any

// RawAttendee is a single already-canonical entry.
type RawAttendee map[string]any

// Address is a bare mailbox. An empty Name is derived from the local part.
type Address struct {
	Address string
	Name    string
}

// ContactRef and GroupRef are resolved through a Directory.
type ContactRef struct{ ID string }
type GroupRef struct{ ID string }

// ContactValue and GroupValue are already-resolved directory entries.
type ContactValue outlook.Contact
type GroupValue outlook.Group

func (AttendeeList) isAttendeeInput() {}
func (RawAttendee) isAttendeeInput()  {}
func (Address) isAttendeeInput()      {}
func (ContactRef) isAttendeeInput()   {}
func (GroupRef) isAttendeeInput()     {}
func (ContactValue) isAttendeeInput() {}
func (GroupValue) isAttendeeInput()   {}

// AttendeeFromValue maps an untyped value (decoded JSON, caller input) onto
// an AttendeeInput. A string without "@" yields an empty list.
func AttendeeFromValue(v any) (AttendeeInput, error) {
	switch t := v.(type) {
	case AttendeeInput:
		return t, nil
	case []any:
		return AttendeeList(t), nil
	case []map[string]any:
		list := make(AttendeeList, len(t))
		for i, m := range t {
			list[i] = m
		}
		return list, nil
	case map[string]any:
		return RawAttendee(t), nil
	case outlook.Payload:
		return RawAttendee(t), nil
	case string:
		if strings.Contains(t, "@") {
			return Address{Address: t}, nil
		}
		return AttendeeList{}, nil
	case outlook.Contact:
		return ContactValue(t), nil
	case outlook.Group:
		return GroupValue(t), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedAttendee, v)
	}
}

// Attendees produces the canonical attendee list for in.
func Attendees(ctx context.Context, dir Directory, in AttendeeInput) ([]any, error) {
	switch v := in.(type) {
	case AttendeeList:
		if v == nil {
			return []any{}, nil
		}
		return []any(v), nil
	case RawAttendee:
		return []any{map[string]any(v)}, nil
	case Address:
		entry, err := addressEntry(v.Address, v.Name)
		if err != nil {
			return nil, err
		}
		return []any{entry}, nil
	case ContactValue:
		entry, err := contactEntry(outlook.Contact(v))
		if err != nil {
			return nil, err
		}
		return []any{entry}, nil
	case GroupValue:
		return groupEntries(outlook.Group(v)), nil
	case ContactRef:
		if dir == nil {
			return nil, ErrNoDirectory
		}
		c, err := dir.Contact(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		entry, err := contactEntry(c)
		if err != nil {
			return nil, err
		}
		return []any{entry}, nil
	case GroupRef:
		if dir == nil {
			return nil, ErrNoDirectory
		}
		g, err := dir.Group(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		return groupEntries(g), nil
	default:
		return nil, ErrUnsupportedAttendee
	}
}

// AttendeeEntry builds {emailAddress: {address, name}}.
func AttendeeEntry(address, name string) map[string]any {
	return map[string]any{
		"emailAddress": map[string]any{
			"address": address,
			"name":    name,
		},
	}
}

func addressEntry(address, name string) (map[string]any, error) {
	if name == "" {
		at := strings.Index(address, "@")
		if at < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
		}
		name = address[:at]
	}
	return AttendeeEntry(address, name), nil
}

func contactEntry(c outlook.Contact) (map[string]any, error) {
	e, err := c.FirstEmailAddress()
	if err != nil {
		return nil, fmt.Errorf("contact %s: %w", c.ID, err)
	}
	return AttendeeEntry(e.Address, e.Name), nil
}

// groupEntries expands each member to its own first address. Members with
// no address are left out.
func groupEntries(g outlook.Group) []any {
	out := make([]any, 0, len(g.Contacts))
	for _, c := range g.Contacts {
		entry, err := contactEntry(c)
		if err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out
}
