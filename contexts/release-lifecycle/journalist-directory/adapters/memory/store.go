package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/journalist-directory/domain/errors"
	"pressroom/contexts/release-lifecycle/journalist-directory/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	contacts map[string]entities.JournalistContact
}

func NewStore(seed []entities.JournalistContact) *Store {
	s := &Store{contacts: make(map[string]entities.JournalistContact, len(seed))}
	for _, item := range seed {
		s.contacts[item.ContactID] = item
	}
	return s
}

func (s *Store) GetContact(_ context.Context, contactID string) (entities.JournalistContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.contacts[strings.TrimSpace(contactID)]
	if !ok {
		return entities.JournalistContact{}, domainerrors.ErrContactNotFound
	}
	return item, nil
}

func (s *Store) ListContacts(_ context.Context, filter ports.ContactFilter) ([]entities.JournalistContact, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	items := make([]entities.JournalistContact, 0, len(s.contacts))
	for _, item := range s.contacts {
		if name != "" && !strings.Contains(strings.ToLower(item.Name), name) {
			continue
		}
		if !equalFold(filter.MediaOutlet, item.MediaOutlet) ||
			!equalFold(filter.Category, item.Category) ||
			!equalFold(filter.Region, item.Region) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ContactID < items[j].ContactID
	})

	total := len(items)
	start := filter.Offset
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < end {
		end = start + filter.Limit
	}
	return append([]entities.JournalistContact(nil), items[start:end]...), total, nil
}

func (s *Store) ListByOutlet(_ context.Context, mediaOutlet string) ([]entities.JournalistContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.JournalistContact, 0)
	for _, item := range s.contacts {
		if strings.EqualFold(strings.TrimSpace(item.MediaOutlet), strings.TrimSpace(mediaOutlet)) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ContactID < items[j].ContactID })
	return items, nil
}

func (s *Store) UpsertContact(_ context.Context, contact entities.JournalistContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[contact.ContactID] = contact
	return nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// equalFold treats an empty filter value as a wildcard.
func equalFold(filter string, value string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, strings.TrimSpace(value))
}
