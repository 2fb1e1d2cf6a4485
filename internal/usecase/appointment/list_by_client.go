package appointment

import (
	"context"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
)

type ListByClient struct {
	repo    domain.Repository
	details domain.DetailStore
	codec   domain.Codec
}

func NewListByClient(
	repo domain.Repository,
	details domain.DetailStore,
	codec domain.Codec,
) *ListByClient {
	return &ListByClient{
		repo:    repo,
		details: details,
		codec:   codec,
	}
}

func (uc *ListByClient) Execute(
	ctx context.Context,
	clientID uint,
	state string,
) ([]AppointmentView, error) {

	if clientID == 0 {
		return nil, httperr.ErrValidation("missing_client", "Client id is required.")
	}

	var filter domain.Status
	if state != "" {
		parsed, err := domain.ParseStatus(state)
		if err != nil {
			return nil, err
		}
		filter = parsed
	}

	apps, err := uc.repo.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, storageErr("relational", "list_by_client", err)
	}

	views := make([]AppointmentView, 0, len(apps))
	for i := range apps {
		ap := apps[i]

		detail, err := uc.details.FindByAppointmentID(ctx, idString(ap.ID))
		if err != nil {
			return nil, storageErr("document", "list_by_client", err)
		}

		views = append(views, AppointmentView{
			Appointment: ap,
			PetName:     uc.codec.Decrypt(ap.PetName),
			OwnerName:   uc.codec.Decrypt(ap.OwnerName),
			Detail:      detail,
		})
	}

	return views, nil
}
