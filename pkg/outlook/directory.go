package outlook

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Directory resolves contacts and contact-folder groups, caching results.
type Directory struct {
	client   *Client
	contacts *expirable.LRU[string, Contact]
	groups   *expirable.LRU[string, Group]
}

// NewDirectory creates a directory over client with an expirable cache.
func NewDirectory(client *Client, size int, ttl time.Duration) *Directory {
	if size <= 0 {
		size = 256
	}
	return &Directory{
		client:   client,
		contacts: expirable.NewLRU[string, Contact](size, nil, ttl),
		groups:   expirable.NewLRU[string, Group](size, nil, ttl),
	}
}

// Contact fetches one contact by id.
func (d *Directory) Contact(ctx context.Context, id string) (Contact, error) {
	if c, ok := d.contacts.Get(id); ok {
		return c, nil
	}

	p, err := d.client.GetOne(ctx, URL(OpGetContact, d.client, url.PathEscape(id)))
	if err != nil {
		return Contact{}, fmt.Errorf("failed to fetch contact %s: %w", id, err)
	}
	c := ContactFromPayload(p)
	d.contacts.Add(id, c)
	return c, nil
}

// Group fetches the contacts in a contact folder.
func (d *Directory) Group(ctx context.Context, id string) (Group, error) {
	if g, ok := d.groups.Get(id); ok {
		return g, nil
	}

	items, err := d.client.Get(ctx, URL(OpListGroupContacts, d.client, url.PathEscape(id)))
	if err != nil {
		return Group{}, fmt.Errorf("failed to fetch group %s: %w", id, err)
	}
	g := Group{ID: id, Contacts: make([]Contact, 0, len(items))}
	for _, p := range items {
		g.Contacts = append(g.Contacts, ContactFromPayload(p))
	}
	d.groups.Add(id, g)
	return g, nil
}

// ContactFromPayload reads a contact in either field-name family.
func ContactFromPayload(p Payload) Contact {
	id, _ := p.ID()
	c := Contact{
		ID:          id,
		DisplayName: p.String("displayName", "DisplayName"),
	}
	raw, _ := p.Value("emailAddresses", "EmailAddresses")
	list, _ := raw.([]any)
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		e := Payload(m)
		c.EmailAddresses = append(c.EmailAddresses, EmailAddress{
			Address: e.String("address", "Address"),
			Name:    e.String("name", "Name"),
		})
	}
	return c
}
