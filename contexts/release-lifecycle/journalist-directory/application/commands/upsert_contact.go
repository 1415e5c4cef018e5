package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "pressroom/contexts/release-lifecycle/journalist-directory/application"
	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/journalist-directory/domain/errors"
	"pressroom/contexts/release-lifecycle/journalist-directory/ports"
)

type UpsertContactCommand struct {
	ContactID   string
	Name        string
	Email       string
	Phone       string
	Website     string
	SocialMedia string
	MediaOutlet string
	Category    string
	Region      string
}

type UpsertContactUseCase struct {
	Repository ports.Repository
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc UpsertContactUseCase) Execute(ctx context.Context, cmd UpsertContactCommand) (entities.JournalistContact, error) {
	logger := application.ResolveLogger(uc.Logger)
	contact := entities.JournalistContact{
		ContactID:   strings.TrimSpace(cmd.ContactID),
		Name:        strings.TrimSpace(cmd.Name),
		Email:       strings.TrimSpace(cmd.Email),
		Phone:       strings.TrimSpace(cmd.Phone),
		Website:     strings.TrimSpace(cmd.Website),
		SocialMedia: strings.TrimSpace(cmd.SocialMedia),
		MediaOutlet: strings.TrimSpace(cmd.MediaOutlet),
		Category:    strings.TrimSpace(cmd.Category),
		Region:      strings.TrimSpace(cmd.Region),
	}
	if !contact.ValidateUpsert() {
		return entities.JournalistContact{}, domainerrors.ErrValidation
	}

	created := false
	if contact.ContactID == "" {
		id, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return entities.JournalistContact{}, err
		}
		contact.ContactID = id
		created = true
	} else if _, err := uc.Repository.GetContact(ctx, contact.ContactID); err != nil {
		if !errors.Is(err, domainerrors.ErrContactNotFound) {
			return entities.JournalistContact{}, err
		}
		created = true
	}

	if err := uc.Repository.UpsertContact(ctx, contact); err != nil {
		logger.Error("journalist contact upsert failed",
			"event", "journalist_contact_upsert_failed",
			"module", "release-lifecycle/journalist-directory",
			"layer", "application",
			"contact_id", contact.ContactID,
			"error", err.Error(),
		)
		return entities.JournalistContact{}, err
	}
	logger.Info("journalist contact saved",
		"event", "journalist_contact_saved",
		"module", "release-lifecycle/journalist-directory",
		"layer", "application",
		"contact_id", contact.ContactID,
		"created", created,
	)
	return contact, nil
}
