package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"skyreserva/internal/domain"
	"skyreserva/internal/domain/models"
	"skyreserva/internal/forms"
	"skyreserva/internal/utils"
)

type CardService struct {
	API       CardAPI
	RequestID string
	Now       func() time.Time
}

// List returns the user's cards. The API answers 404 when there are none.
func (s CardService) List(ctx context.Context, userID int64) ([]models.Card, error) {
	cards, err := s.API.CardsByUser(ctx, userID)
	if err != nil {
		if domain.UpstreamStatus(err) == http.StatusNotFound {
			return []models.Card{}, nil
		}
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}
	for i := range cards {
		cards[i].Display = utils.GroupCardNumber(cards[i].Number)
	}
	return cards, nil
}

func (s CardService) Active(ctx context.Context, userID int64) ([]models.Card, error) {
	cards, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s CardService) Add(ctx context.Context, userID int64, form forms.Card) (models.Card, error) {
	if err := form.Validate(clock(s.Now)); err != nil {
		return models.Card{}, err
	}
	number := form.CleanNumber()
	card, err := s.API.AddCard(ctx, models.AddCardRequest{
		UserID: userID,
		Number: number,
		Holder: strings.TrimSpace(form.Holder),
		Expiry: strings.TrimSpace(form.Expiry),
		Type:   strings.TrimSpace(form.Type),
	})
	if err != nil {
		return models.Card{}, err
	}
	utils.LogEvent(s.RequestID, "cards", "add", fmt.Sprintf("user_id=%d card=%s", userID, utils.MaskCardNumber(number)))
	return card, nil
}

// owned checks the card is one of the user's before it is changed.
func (s CardService) owned(ctx context.Context, userID, cardID int64) (models.Card, error) {
	cards, err := s.List(ctx, userID)
	if err != nil {
		return models.Card{}, err
	}
	for _, c := range cards {
		if c.ID == cardID {
			return c, nil
		}
	}
	return models.Card{}, domain.NotFoundError{Resource: "tarjeta"}
}

func (s CardService) SetActive(ctx context.Context, userID, cardID int64, active bool) error {
	c, err := s.owned(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if err := s.API.UpdateCard(ctx, cardID, models.UpdateCardRequest{Active: &active}); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cards", "set_active", fmt.Sprintf("card=%s active=%t", utils.MaskCardNumber(c.Number), active))
	return nil
}

func (s CardService) Delete(ctx context.Context, userID, cardID int64) error {
	c, err := s.owned(ctx, userID, cardID)
	if err != nil {
		return err
	}
	if err := s.API.DeleteCard(ctx, cardID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cards", "delete", "card="+utils.MaskCardNumber(c.Number))
	return nil
}
