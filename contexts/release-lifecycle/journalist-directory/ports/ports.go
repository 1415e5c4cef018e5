package ports

import (
	"context"

	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
)

type ContactFilter struct {
	Name        string
	MediaOutlet string
	Category    string
	Region      string
	Limit       int
	Offset      int
}

type Repository interface {
	GetContact(ctx context.Context, contactID string) (entities.JournalistContact, error)
	ListContacts(ctx context.Context, filter ContactFilter) ([]entities.JournalistContact, int, error)
	ListByOutlet(ctx context.Context, mediaOutlet string) ([]entities.JournalistContact, error)
	UpsertContact(ctx context.Context, contact entities.JournalistContact) error
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
